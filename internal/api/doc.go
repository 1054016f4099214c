// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package api serves the HTTP and WebSocket interface.

Routes (all JSON unless noted):

	GET    /api/v1/health                    status of the service and its upstreams
	GET    /api/v1/health/live               liveness probe
	GET    /api/v1/health/ready              readiness probe (query service ping)
	GET    /api/v1/datasets                  dataset registry
	GET    /api/v1/datasets/{id}             one dataset
	GET    /api/v1/datasets/{id}/versions    versions known to the query service
	POST   /api/v1/analyze                   run a query across versions
	POST   /api/v1/analyze/tree              analyze a caller-supplied tree
	DELETE /api/v1/sessions/{id}             reset a session
	GET    /api/v1/ws                        WebSocket result stream
	GET    /metrics                          Prometheus exposition

Every JSON response uses the same envelope:

	{"success": true,  "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "...", "message": "...", "details": {...}, "request_id": "..."}, "meta": {...}}

Error codes:

  - VALIDATION_ERROR (400): the request failed validation; details lists
    the offending fields
  - BAD_REQUEST (400): malformed JSON or missing body
  - NOT_FOUND (404): unknown dataset or session
  - CONFLICT (409): a newer query of the same session superseded this one
  - UPSTREAM_ERROR (502): the query service failed; details carries the
    endpoint, params and status of each failed version
  - SERVICE_UNAVAILABLE (503): circuit breaker open or WebSocket hub down
  - GATEWAY_TIMEOUT (504): the query deadline passed

A query where only some versions fail still succeeds; the failures are
listed in the report's errors array. The whole request fails with 502 only
when every version failed upstream.

Middleware order: request id, real IP, recoverer, CORS, then per-group
security headers, rate limits, Prometheus metrics and the performance
monitor.
*/
package api
