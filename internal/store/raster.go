package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// RasterRepository locates raw raster assets and their ingestion manifests,
// independent of the storage backing them.
type RasterRepository interface {
	// RawRasterPath returns the expected path of the raw raster for
	// (product, year). It does not guarantee the file exists.
	RawRasterPath(product string, year int) string

	// ManifestPath returns the path of the ingestion manifest for
	// (product, year).
	ManifestPath(product string, year int) string

	// Exists reports whether the raw raster is present locally.
	Exists(product string, year int) bool
}

// LocalRasterRepository resolves raster paths under a local data directory:
//
//	{dataDir}/raw/{product}/{year}.tif
//	{dataDir}/raw/{product}/{year}/manifest.json
type LocalRasterRepository struct {
	dataDir string
}

// NewLocalRasterRepository creates a repository rooted at dataDir.
func NewLocalRasterRepository(dataDir string) *LocalRasterRepository {
	return &LocalRasterRepository{dataDir: dataDir}
}

func (r *LocalRasterRepository) RawRasterPath(product string, year int) string {
	return filepath.Join(r.dataDir, "raw", product, fmt.Sprintf("%d.tif", year))
}

func (r *LocalRasterRepository) ManifestPath(product string, year int) string {
	return filepath.Join(r.dataDir, "raw", product, strconv.Itoa(year), "manifest.json")
}

func (r *LocalRasterRepository) Exists(product string, year int) bool {
	_, err := os.Stat(r.RawRasterPath(product, year))
	return err == nil
}
