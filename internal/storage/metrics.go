package storage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryDuration tracks sales aggregation latency by outcome ("ok", "error").
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendas_db_query_duration_seconds",
			Help:    "Duration of the sales-by-store aggregation query",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

func observeQuery(start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	QueryDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
