// Package command implements the phenology-ingest CLI commands.
package command

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "phenology-ingest",
	Short:        "Plan raster ingestion for the phenology tracking system",
	SilenceUsage: true,
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return rootCmd.Execute()
}
