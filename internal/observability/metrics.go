package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// aggregation service.
type Metrics struct {
	SourceFetches   *prometheus.CounterVec // labels: source={buoy,waves,tides,sun}, outcome={success,error,empty}
	SourceFallbacks *prometheus.CounterVec // labels: source

	SnapshotDuration   prometheus.Histogram
	SnapshotsAssembled prometheus.Counter

	// Forecast cache metrics.
	CacheLookups        *prometheus.CounterVec // labels: result={fresh,stale,miss}
	CacheServedStale    prometheus.Counter
	CacheWriteConflicts prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swellboard",
			Name:      "source_fetches_total",
			Help:      "Upstream source fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swellboard",
			Name:      "source_fallbacks_total",
			Help:      "Times a failing source was replaced by its null default.",
		}, []string{"source"}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swellboard",
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of a complete fan-out/fan-in aggregation pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SnapshotsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swellboard",
			Name:      "snapshots_assembled_total",
			Help:      "Total aggregate snapshots assembled.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swellboard",
			Name:      "forecast_cache_lookups_total",
			Help:      "Forecast cache lookups by staleness result.",
		}, []string{"result"}),
		CacheServedStale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swellboard",
			Name:      "forecast_cache_served_stale_total",
			Help:      "Times a stale cache entry was served because the refetch failed.",
		}),
		CacheWriteConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swellboard",
			Name:      "forecast_cache_write_conflicts_total",
			Help:      "Optimistic-concurrency conflicts writing the persisted entry.",
		}),
	}

	prometheus.MustRegister(
		m.SourceFetches,
		m.SourceFallbacks,
		m.SnapshotDuration,
		m.SnapshotsAssembled,
		m.CacheLookups,
		m.CacheServedStale,
		m.CacheWriteConflicts,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SourceFetches:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "swellboard", Name: "source_fetches_total"}, []string{"source", "outcome"}),
		SourceFallbacks:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "swellboard", Name: "source_fallbacks_total"}, []string{"source"}),
		SnapshotDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "swellboard", Name: "snapshot_duration_seconds"}),
		SnapshotsAssembled:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "swellboard", Name: "snapshots_assembled_total"}),
		CacheLookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "swellboard", Name: "forecast_cache_lookups_total"}, []string{"result"}),
		CacheServedStale:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "swellboard", Name: "forecast_cache_served_stale_total"}),
		CacheWriteConflicts: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "swellboard", Name: "forecast_cache_write_conflicts_total"}),
	}
}
