package phenology

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeseriesUnsupported is returned when the configured repository cannot
// serve multi-year point reads.
var ErrTimeseriesUnsupported = errors.New("repository does not support timeseries reads")

// QueryService is the read-only application service in front of a Repository.
// The transport layer depends on it instead of any concrete storage backend,
// so backends can be swapped without touching handlers.
type QueryService struct {
	repo  Repository
	cache PointCache // nil disables point caching
}

// NewQueryService wires a query service to its repository. The repository is
// supplied once at construction and never swapped.
func NewQueryService(repo Repository, cache PointCache) *QueryService {
	return &QueryService{repo: repo, cache: cache}
}

// GetPointMetric returns the metric for a single location and year, or
// found=false when none exists. It is a pass-through to the repository apart
// from the optional cache; only found metrics are cached so absence can be
// re-checked on every call.
func (s *QueryService) GetPointMetric(ctx context.Context, loc Location, year int) (Metric, bool, error) {
	var key string
	if s.cache != nil {
		key = PointMetricCacheKey("repo", loc, year)
		if m, ok := s.cache.Get(key); ok {
			return m, true, nil
		}
	}

	m, found, err := s.repo.GetMetricForLocation(ctx, loc, year)
	if err != nil || !found {
		return Metric{}, false, err
	}

	if s.cache != nil {
		s.cache.Set(key, m)
	}
	return m, true, nil
}

// GetPointTimeseries returns the metrics present for a point across
// [startYear, endYear]. Repositories advertise the capability by implementing
// TimeseriesReader.
func (s *QueryService) GetPointTimeseries(ctx context.Context, loc Location, startYear, endYear int) ([]Metric, error) {
	tr, ok := s.repo.(TimeseriesReader)
	if !ok {
		return nil, ErrTimeseriesUnsupported
	}
	return tr.GetTimeseriesForLocation(ctx, loc, startYear, endYear)
}

// PointMetricCacheKey normalizes coordinates so equivalent requests map to
// the same cache entry: lat/lon are rounded to 6 decimal places (~0.11m at
// the equator, more than enough here).
func PointMetricCacheKey(source string, loc Location, year int) string {
	return fmt.Sprintf("phenology:point:%s:%d:%.6f:%.6f", source, year, loc.Lat, loc.Lon)
}
