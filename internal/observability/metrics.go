// Package observability provides metrics and tracing.
package observability

import (
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SessionOperations counts session store operations by kind and outcome.
	SessionOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_session_operations_total",
		Help: "Total number of session store operations",
	}, []string{"operation", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "warbler_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WarblesPosted counts successfully created warbles.
	WarblesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_warbles_posted_total",
		Help: "Total number of warbles posted",
	})

	// LikeToggles counts like toggles by resulting state.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_like_toggles_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})
)

var (
	httpMetricsOnce sync.Once
	httpMetrics     *fiberprometheus.FiberPrometheus
)

// InitHTTPMetrics returns the fiberprometheus middleware for HTTP metrics.
// The underlying collectors register with the default registry exactly once,
// so repeated server construction (tests) is safe.
func InitHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	httpMetricsOnce.Do(func() {
		httpMetrics = fiberprometheus.New(serviceName)
	})
	return httpMetrics
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
