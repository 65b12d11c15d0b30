package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ndviAssetKey is the asset every MOD13Q1 item is expected to carry.
const ndviAssetKey = "ndvi"

// AssetRef points at one NDVI asset inside the catalog.
type AssetRef struct {
	ItemID   string `json:"item_id"`
	Datetime string `json:"datetime"` // ISO datetime from the catalog
	DOY      int    `json:"doy"`
	AssetKey string `json:"asset_key"`
	Href     string `json:"href"`
}

// Plan lists the NDVI assets to fetch for one collection, year, and bounding
// box. Assets are sorted by (doy, item_id) so repeated planning runs produce
// identical manifests.
type Plan struct {
	Collection string     `json:"collection"`
	Year       int        `json:"year"`
	BBox       [4]float64 `json:"bbox"` // min_lon, min_lat, max_lon, max_lat
	Assets     []AssetRef `json:"assets"`
}

// Planner builds ingestion plans from a STAC catalog.
type Planner struct {
	client *Client
	logger *slog.Logger
}

// NewPlanner creates a planner on top of a catalog client.
func NewPlanner(client *Client, logger *slog.Logger) *Planner {
	return &Planner{client: client, logger: logger}
}

// BuildPlan searches the catalog and assembles the ordered asset list.
// Items missing a usable datetime or the NDVI asset fail the whole plan,
// so malformed catalogs are caught early rather than at download time.
func (p *Planner) BuildPlan(ctx context.Context, collection string, year int, bbox [4]float64) (Plan, error) {
	items, err := p.client.SearchYear(ctx, collection, year, bbox)
	if err != nil {
		return Plan{}, fmt.Errorf("search %s for %d: %w", collection, year, err)
	}

	assets := make([]AssetRef, 0, len(items))
	for _, item := range items {
		dt := item.Properties.Datetime
		if dt == "" {
			dt = item.Properties.StartDatetime
		}
		if dt == "" {
			dt = item.Properties.EndDatetime
		}
		if dt == "" {
			return Plan{}, fmt.Errorf("item %s has no datetime fields", item.ID)
		}

		doy, err := dayOfYear(dt)
		if err != nil {
			return Plan{}, fmt.Errorf("item %s: %w", item.ID, err)
		}

		asset, ok := item.Assets[ndviAssetKey]
		if !ok {
			keys := make([]string, 0, len(item.Assets))
			for k := range item.Assets {
				keys = append(keys, k)
			}
			return Plan{}, fmt.Errorf("item %s has no %q asset (has: %s)", item.ID, ndviAssetKey, strings.Join(keys, ","))
		}

		assets = append(assets, AssetRef{
			ItemID:   item.ID,
			Datetime: dt,
			DOY:      doy,
			AssetKey: ndviAssetKey,
			Href:     asset.Href,
		})
	}

	sort.Slice(assets, func(i, j int) bool {
		if assets[i].DOY != assets[j].DOY {
			return assets[i].DOY < assets[j].DOY
		}
		return assets[i].ItemID < assets[j].ItemID
	})

	p.logger.Info("built ingestion plan",
		"collection", collection, "year", year, "assets", len(assets))

	return Plan{Collection: collection, Year: year, BBox: bbox, Assets: assets}, nil
}

// WriteManifest serializes the plan as indented JSON, creating parent
// directories as needed.
func WriteManifest(plan Plan, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	payload, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// ParseBBox parses "min_lon,min_lat,max_lon,max_lat".
func ParseBBox(s string) ([4]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return [4]float64{}, fmt.Errorf("bbox must be 'min_lon,min_lat,max_lon,max_lat', got %q", s)
	}

	var bbox [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [4]float64{}, fmt.Errorf("invalid bbox component %q", part)
		}
		bbox[i] = v
	}
	return bbox, nil
}

func dayOfYear(iso string) (int, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0, fmt.Errorf("invalid datetime %q: %w", iso, err)
	}
	return t.UTC().YearDay(), nil
}
