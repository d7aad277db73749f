package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotel_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_graphql_operations_total",
			Help: "GraphQL root fields resolved, by name and result code.",
		},
		[]string{"operation", "code"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotel_graphql_operation_duration_seconds",
			Help:    "GraphQL root field latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_bookings_total",
			Help: "Bookings created and cancelled.",
		},
		[]string{"action"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotel_room_cache_hits_total",
			Help: "Room cache hits.",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotel_room_cache_misses_total",
			Help: "Room cache misses.",
		},
	)
)

func RecordHttpRequest(method, route, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, route, status).Inc()
	HttpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordOperation counts a resolved operation; code is empty on success.
func RecordOperation(operation, code string, duration time.Duration) {
	if code == "" {
		code = "OK"
	}
	OperationsTotal.WithLabelValues(operation, code).Inc()
	OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordBooking(action string) {
	BookingsTotal.WithLabelValues(action).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}
