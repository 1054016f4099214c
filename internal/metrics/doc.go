// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package metrics exposes the Prometheus instrumentation for Topiclens.

All collectors are registered on the default registry through promauto and
served by promhttp at /metrics.

Metric families:

  - api_*: HTTP request count, latency and in-flight gauge
  - analysis_*: query execution latency, per-version outcomes, message
    volume and discarded stale reports
  - query_service_*: remote query service calls and HTTP 429 responses
  - enhancement_requests_total: enhancement merges vs local fallbacks
  - cache_*: session cache hits, misses, size and evictions
  - websocket_*: connected clients, messages sent and errors
  - circuit_breaker_*: breaker state, requests and transitions, labelled
    by breaker name ("query-service", "enhance-http", "enhance-gemini")

Usage:

	start := time.Now()
	report, err := executor.Execute(ctx, req)
	metrics.RecordAnalysis(string(req.Type), time.Since(start))
*/
package metrics
