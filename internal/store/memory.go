package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/phenology"
)

// metricKey is the composite lookup key. Key equality is exact float64
// comparison on lat/lon: no tolerance or snapping is applied until a
// spatial-index-backed repository exists.
type metricKey struct {
	lat  float64
	lon  float64
	year int
}

func keyFor(loc phenology.Location, year int) metricKey {
	return metricKey{lat: loc.Lat, lon: loc.Lon, year: year}
}

// MemoryRepository is a concurrency-safe, process-local implementation of
// phenology.Repository. State is lost on restart; a persistent backend must
// honor the same interface and the absence-is-not-an-error contract.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[metricKey]phenology.Metric
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[metricKey]phenology.Metric),
	}
}

// AddMetric inserts or overwrites the entry at the metric's own
// (lat, lon, year) key. Last write wins; there is no versioning.
func (r *MemoryRepository) AddMetric(m phenology.Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[keyFor(m.Location, m.Year)] = m
}

// GetMetricForLocation returns the stored metric for the exact key, or
// found=false. It cannot fail.
func (r *MemoryRepository) GetMetricForLocation(_ context.Context, loc phenology.Location, year int) (phenology.Metric, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.data[keyFor(loc, year)]
	return m, ok, nil
}

// GetTimeseriesForLocation collects the metrics present for a point across
// [startYear, endYear], in year order. Missing years are skipped.
func (r *MemoryRepository) GetTimeseriesForLocation(_ context.Context, loc phenology.Location, startYear, endYear int) ([]phenology.Metric, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("start year %d is after end year %d", startYear, endYear)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var metrics []phenology.Metric
	for year := startYear; year <= endYear; year++ {
		if m, ok := r.data[keyFor(loc, year)]; ok {
			metrics = append(metrics, m)
		}
	}
	return metrics, nil
}

// Len reports the number of stored metrics.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.data)
}
