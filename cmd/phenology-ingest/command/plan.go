package command

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/config"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/ingest"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/observability"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/store"
)

var (
	planYear    int
	planBBox    string
	planProduct string
	planDataDir string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create a manifest of MOD13Q1 NDVI assets for a year and bounding box",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := observability.NewLogger(cfg)

		bbox, err := ingest.ParseBBox(planBBox)
		if err != nil {
			return err
		}

		dataDir := planDataDir
		if dataDir == "" {
			dataDir = cfg.DataDir
		}

		client := ingest.NewClient(&http.Client{Timeout: 30 * time.Second}, cfg.StacURL)
		planner := ingest.NewPlanner(client, logger)

		plan, err := planner.BuildPlan(cmd.Context(), cfg.Mod13Q1Collection, planYear, bbox)
		if err != nil {
			return err
		}

		rasters := store.NewLocalRasterRepository(dataDir)
		out := rasters.ManifestPath(planProduct, planYear)
		if err := ingest.WriteManifest(plan, out); err != nil {
			return err
		}

		fmt.Printf("Wrote manifest: %s (%d items)\n", out, len(plan.Assets))
		return nil
	},
}

func init() {
	planCmd.Flags().IntVar(&planYear, "year", 0, "calendar year to plan")
	planCmd.Flags().StringVar(&planBBox, "bbox", "", "bounding box as 'min_lon,min_lat,max_lon,max_lat'")
	planCmd.Flags().StringVar(&planProduct, "product", "mod13q1", "product name used in data paths")
	planCmd.Flags().StringVar(&planDataDir, "data-dir", "", "data directory (defaults to DATA_DIR)")

	_ = planCmd.MarkFlagRequired("year")
	_ = planCmd.MarkFlagRequired("bbox")

	rootCmd.AddCommand(planCmd)
}
