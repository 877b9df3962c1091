package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts reads answered by Redis.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendas_cache_hits_total",
			Help: "Total number of sales cache hits",
		},
	)

	// CacheMisses counts reads for absent keys.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendas_cache_misses_total",
			Help: "Total number of sales cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendas_cache_errors_total",
			Help: "Total number of sales cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "ping"
	)

	// CacheInvalidatedKeys counts keys removed by explicit invalidation.
	CacheInvalidatedKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendas_cache_invalidated_keys_total",
			Help: "Total number of sales cache keys removed by invalidation",
		},
	)
)
