package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     prometheus.CounterVec
	HTTPRequestDuration   prometheus.HistogramVec
	HTTPActiveConnections prometheus.GaugeVec

	// Cache metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Analytics computation metrics
	SnapshotsComputed       prometheus.CounterVec
	SnapshotComputeDuration prometheus.HistogramVec
	ProgressReportsComputed prometheus.CounterVec

	// Cross-platform sync metrics
	SyncTargetsTotal prometheus.CounterVec
	AdaptationsTotal prometheus.CounterVec

	// Export metrics
	ExportsTotal prometheus.CounterVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveConnections: *promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "http_active_connections",
					Help: "Number of currently active HTTP connections",
				},
				[]string{"method", "path"},
			),

			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache_name"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache_name"},
			),

			SnapshotsComputed: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "analytics_snapshots_computed_total",
					Help: "Analytics snapshots computed, by period type",
				},
				[]string{"period_type"},
			),
			SnapshotComputeDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "analytics_snapshot_compute_seconds",
					Help:    "Snapshot computation latency in seconds",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
				},
				[]string{"period_type"},
			),
			ProgressReportsComputed: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "progress_reports_computed_total",
					Help: "Progress reports computed, by cache outcome",
				},
				[]string{"source"},
			),

			SyncTargetsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "content_sync_targets_total",
					Help: "Cross-platform sync target outcomes",
				},
				[]string{"platform", "outcome"},
			),
			AdaptationsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "content_adaptations_total",
					Help: "Content adaptations computed, by source and target platform",
				},
				[]string{"source", "target"},
			),

			ExportsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "analytics_exports_total",
					Help: "Analytics exports, by format and outcome",
				},
				[]string{"format", "outcome"},
			),

			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Application errors by code",
				},
				[]string{"code"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing on first use
func Get() *Metrics {
	return Initialize()
}
