package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the query service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: method, path, status
	RequestDuration *prometheus.HistogramVec // labels: method, path

	PointLookups *prometheus.CounterVec // labels: outcome={found,missing}

	SnapshotLoads      prometheus.Counter
	SnapshotLoadErrors prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.PointLookups,
		m.SnapshotLoads,
		m.SnapshotLoadErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phenology",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "phenology",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by method and route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),
		PointLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phenology",
			Name:      "point_lookups_total",
			Help:      "Point-metric lookups by outcome.",
		}, []string{"outcome"}),
		SnapshotLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phenology",
			Name:      "snapshot_records_loaded_total",
			Help:      "Derived snapshot records loaded into the repository.",
		}),
		SnapshotLoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phenology",
			Name:      "snapshot_record_errors_total",
			Help:      "Derived snapshot records rejected during loading.",
		}),
	}
}
