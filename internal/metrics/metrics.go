// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Analysis Metrics
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "End-to-end duration of a query execution in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"query_type"},
	)

	AnalysisVersions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_versions_total",
			Help: "Total number of analyzed tree versions by outcome",
		},
		[]string{"outcome"}, // "success", "upstream_error"
	)

	AnalysisMessages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_messages_per_version",
			Help:    "Number of messages aggregated per tree version",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	StaleResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_stale_results_discarded_total",
			Help: "Total number of reports discarded because a newer query superseded them",
		},
	)

	// Remote Query Service Metrics
	QueryServiceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_service_requests_total",
			Help: "Total number of remote query service calls",
		},
		[]string{"endpoint", "result"}, // result: "success", "error"
	)

	QueryServiceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_service_request_duration_seconds",
			Help:    "Remote query service call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	QueryServiceRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_service_rate_limited_total",
			Help: "Total number of HTTP 429 responses from the query service",
		},
	)

	// Enhancement Metrics
	EnhancementRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancement_requests_total",
			Help: "Total number of enhancement attempts by outcome",
		},
		[]string{"provider", "outcome"}, // outcome: "success", "fallback"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAnalysis records a completed query execution.
func RecordAnalysis(queryType string, duration time.Duration) {
	AnalysisDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

// RecordVersion records the outcome of one version slot.
func RecordVersion(messages int, err error) {
	if err != nil {
		AnalysisVersions.WithLabelValues("upstream_error").Inc()
		return
	}
	AnalysisVersions.WithLabelValues("success").Inc()
	AnalysisMessages.Observe(float64(messages))
}

// RecordQueryServiceCall records a remote query service call.
func RecordQueryServiceCall(endpoint string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	QueryServiceRequests.WithLabelValues(endpoint, result).Inc()
	QueryServiceDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordEnhancement records whether an enhancement was merged or fell back
// to local insights.
func RecordEnhancement(provider string, success bool) {
	outcome := "fallback"
	if success {
		outcome = "success"
	}
	EnhancementRequests.WithLabelValues(provider, outcome).Inc()
}
