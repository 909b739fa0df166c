package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Match outcome labels.
const (
	OutcomeMatched   = "matched"
	OutcomeNoMatch   = "no_match"
	OutcomeAmbiguous = "ambiguous"
)

var (
	MatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_match_total",
			Help: "Landing page path matches by outcome",
		},
		[]string{"outcome"},
	)

	ResolverWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_resolver_warnings_total",
			Help: "Content authoring warnings raised while resolving pages",
		},
		[]string{"kind"},
	)

	EngineRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "landing_engine_rebuilds_total",
			Help: "Number of times the landing engine was rebuilt from a snapshot",
		},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_cache_invalidations_total",
			Help: "Snapshot cache invalidations by reason",
		},
		[]string{"reason"},
	)

	EnumeratedURLs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "landing_enumerated_urls",
			Help: "Number of URLs produced by the last enumeration",
		},
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "landing_resolve_duration_seconds",
			Help:    "Time spent matching, resolving and composing one page",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)
