package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the aggregation engine.
type Metrics struct {
	// Cache metrics
	CacheHits      *prometheus.CounterVec
	CacheMisses    prometheus.Counter
	CacheDegraded  *prometheus.CounterVec
	CacheEvictions prometheus.Counter

	// Computation metrics
	RecomputeDuration *prometheus.HistogramVec
	RecomputeTotal    *prometheus.CounterVec
	SingleflightJoins prometheus.Counter
	LedgerErrors      prometheus.Counter

	// Invalidation metrics
	Invalidations *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wipengine_cache_hits_total",
				Help: "Total cache hits by tier",
			},
			[]string{"tier"},
		),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wipengine_cache_misses_total",
			Help: "Total cache misses across all tiers",
		}),
		CacheDegraded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wipengine_cache_degraded_total",
				Help: "Cache operations degraded by an unreachable distributed tier",
			},
			[]string{"operation"},
		),
		CacheEvictions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wipengine_cache_evictions_total",
			Help: "Total cache entries evicted by invalidation",
		}),

		RecomputeDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wipengine_recompute_duration_seconds",
				Help:    "Duration of snapshot recomputations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dimension"},
		),
		RecomputeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wipengine_recompute_total",
				Help: "Total snapshot recomputations by dimension",
			},
			[]string{"dimension"},
		),
		SingleflightJoins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wipengine_singleflight_joins_total",
			Help: "Callers that joined an in-flight computation instead of starting one",
		}),
		LedgerErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wipengine_ledger_errors_total",
			Help: "Total failed ledger reads",
		}),

		Invalidations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wipengine_invalidations_total",
				Help: "Total entity invalidations by entity kind",
			},
			[]string{"entity_kind"},
		),
	}
}
