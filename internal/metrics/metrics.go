package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "magazine_cms",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "magazine_cms",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BlocksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "magazine_cms",
			Name:      "blocks_created_total",
			Help:      "Blocks appended to magazines and child pages.",
		},
		[]string{"parent_type", "block_type"},
	)

	BlockReorders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "magazine_cms",
			Name:      "block_reorders_total",
			Help:      "Reorder requests by outcome.",
		},
		[]string{"parent_type", "result"},
	)

	AnalyticsWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "magazine_cms",
			Name:      "analytics_writes_total",
			Help:      "Asynchronous analytics writes by kind and outcome.",
		},
		[]string{"kind", "result"},
	)
)
