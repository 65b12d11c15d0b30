package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/observability"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/phenology"
	"github.com/billyblackk/forest-phenology-tracking-system/internal/store"
)

func mustLocation(t *testing.T, lat, lon float64) phenology.Location {
	t.Helper()
	loc, err := phenology.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func writeSnapshot(t *testing.T, dataDir, name, payload string) {
	t.Helper()
	dir := filepath.Join(dataDir, "derived")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644))
}

func TestLoadAllMissingDirectory(t *testing.T) {
	repo := store.NewMemoryRepository()
	loader := NewSnapshotLoader(t.TempDir(), repo, discardLogger(), observability.NewMetricsForTesting())

	n, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, repo.Len())
}

func TestLoadAllStoresRecords(t *testing.T) {
	dataDir := t.TempDir()
	writeSnapshot(t, dataDir, "2020.json", `[
		{"lat": 52.5, "lon": 13.4, "year": 2020, "sos_date": "2020-04-15", "eos_date": "2020-10-15", "season_length": 183, "is_forest": true},
		{"lat": 48.1, "lon": 11.6, "year": 2020, "is_forest": false}
	]`)

	repo := store.NewMemoryRepository()
	loader := NewSnapshotLoader(dataDir, repo, discardLogger(), observability.NewMetricsForTesting())

	n, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, repo.Len())

	loc := mustLocation(t, 52.5, 13.4)
	m, found, err := repo.GetMetricForLocation(context.Background(), loc, 2020)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, m.IsForest)
	require.NotNil(t, m.SeasonLength)
	assert.Equal(t, 183, *m.SeasonLength)
	require.NotNil(t, m.SOSDate)
	assert.Equal(t, "2020-04-15", m.SOSDate.Format("2006-01-02"))

	bare, found, err := repo.GetMetricForLocation(context.Background(), mustLocation(t, 48.1, 11.6), 2020)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, bare.SOSDate)
	assert.Nil(t, bare.SeasonLength)
}

func TestLoadAllSkipsInvalidCoordinates(t *testing.T) {
	dataDir := t.TempDir()
	writeSnapshot(t, dataDir, "2020.json", `[
		{"lat": 91.0, "lon": 13.4, "year": 2020, "is_forest": true},
		{"lat": 52.5, "lon": 13.4, "year": 2020, "is_forest": true}
	]`)

	repo := store.NewMemoryRepository()
	loader := NewSnapshotLoader(dataDir, repo, discardLogger(), observability.NewMetricsForTesting())

	n, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, repo.Len())
}

func TestLoadAllMalformedFile(t *testing.T) {
	dataDir := t.TempDir()
	writeSnapshot(t, dataDir, "broken.json", `{not json`)

	repo := store.NewMemoryRepository()
	loader := NewSnapshotLoader(dataDir, repo, discardLogger(), observability.NewMetricsForTesting())

	_, err := loader.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestLoadAllIdempotent(t *testing.T) {
	dataDir := t.TempDir()
	writeSnapshot(t, dataDir, "2020.json", `[
		{"lat": 52.5, "lon": 13.4, "year": 2020, "season_length": 183, "is_forest": true}
	]`)

	repo := store.NewMemoryRepository()
	loader := NewSnapshotLoader(dataDir, repo, discardLogger(), observability.NewMetricsForTesting())

	for i := 0; i < 3; i++ {
		n, err := loader.LoadAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, 1, repo.Len())
}
