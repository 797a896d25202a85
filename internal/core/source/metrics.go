package source

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_upstream_requests_total",
			Help: "Total number of requests sent to the recipe source",
		},
		[]string{"kind", "status"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_upstream_request_duration_seconds",
			Help:    "Recipe source request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	sourceCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_source_cache_hits_total",
			Help: "Total number of recipe source cache hits",
		},
	)

	sourceRepairedPayloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_source_repaired_payloads_total",
			Help: "Total number of malformed recipe payloads repaired before decoding",
		},
	)
)
