// Package metrics - Prometheus metrics for the planning engine
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlanningDuration tracks one PlanDay invocation's wall time.
	PlanningDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "planning_duration_seconds",
		Help:    "Duration of a single daily planning pass",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	// DistanceCacheHitsTotal counts oracle cache hits.
	DistanceCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "distance_cache_hits_total",
		Help: "Total distance oracle cache hits",
	})

	// DistanceCacheMissesTotal counts oracle cache misses.
	DistanceCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "distance_cache_misses_total",
		Help: "Total distance oracle cache misses",
	})

	// DistanceAPIFailuresTotal counts routing-service failures that
	// degraded to the great-circle fallback.
	DistanceAPIFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "distance_api_failures_total",
		Help: "Total routing service failures that fell back to the haversine estimate",
	})

	// TournamentRunsTotal counts fleet tournament invocations.
	TournamentRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tournament_runs_total",
		Help: "Total fleet tournament runs",
	})

	// DailyProfitGauge reports the most recently planned day's profit.
	DailyProfitGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "daily_profit_eur",
		Help: "Net profit of the most recently planned day",
	})
)
