package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hexgeo",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "pattern", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hexgeo",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "pattern"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hexgeo",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "pattern"})

	// Grid metrics
	cellsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hexgeo",
		Subsystem: "grid",
		Name:      "cells_served_total",
		Help:      "Total cell features written to responses",
	})

	gridErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hexgeo",
		Subsystem: "grid",
		Name:      "errors_total",
		Help:      "Total requests rejected by the grid, by HTTP status",
	}, []string{"status"})
)

// recordRequest updates the HTTP metrics. Unmatched requests share one
// pattern label to keep cardinality bounded.
func recordRequest(method, pattern string, status, size int, elapsed time.Duration) {
	if pattern == "" {
		pattern = "unmatched"
	}

	httpRequestsTotal.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, pattern).Observe(elapsed.Seconds())
	httpResponseSize.WithLabelValues(method, pattern).Observe(float64(size))
}
