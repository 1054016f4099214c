// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package middleware provides HTTP instrumentation middleware.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauges labelled
    by chi route pattern
  - PerformanceMonitor: rolling latency window per route with percentile
    summaries, reported by the health endpoint

Both middlewares label requests by the matched chi route pattern (for
example "/api/v1/datasets/{id}") rather than the raw path, so path
parameters never create new label values. Requests that match no route are
labelled "unmatched".

Usage:

	perfMon := middleware.NewPerformanceMonitor(1000)
	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)

Request IDs and compression come from chi's own middleware package.
*/
package middleware
