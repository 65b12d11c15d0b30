package phenology

import "context"

// Repository is the storage capability behind phenology queries. Exactly one
// read is required; concrete backends (in-memory today, a spatial database
// later) are interchangeable as long as they honor it.
//
// Absence is a normal, first-class outcome reported through the boolean,
// never through the error. The error is reserved for backend failures
// (*RepositoryError). Implementations must be safe to call with a
// location/year they have never seen.
type Repository interface {
	GetMetricForLocation(ctx context.Context, loc Location, year int) (Metric, bool, error)
}

// TimeseriesReader is an optional repository capability for multi-year reads
// at a single point. Callers discover it by type assertion; backends that
// cannot serve range scans simply do not implement it.
type TimeseriesReader interface {
	GetTimeseriesForLocation(ctx context.Context, loc Location, startYear, endYear int) ([]Metric, error)
}

// PointCache caches point-metric lookups under normalized string keys.
type PointCache interface {
	Get(key string) (Metric, bool)
	Set(key string, m Metric)
}
