// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package query is the client for the remote topic-tree query service.

Every call is a POST to {baseURL}/query carrying the endpoint name and its
parameters:

	{"endpoint": "get_channel_tree", "params": {"channelId": "...", "version": "2"}}

and the service answers with a wrapper:

	{"success": true, "data": {...}}
	{"success": false, "error": "channel not found"}

Supported endpoints:

  - get_channel_tree: tree of one channel version
  - get_channel_tree_by_user: tree restricted to one user
  - get_channel_tree_by_users: tree restricted to a set of users
  - list_channel_versions: available versions of a channel

# Resilience

Client paces outbound calls with a token bucket (golang.org/x/time/rate),
retries HTTP 429 responses with exponential backoff honouring Retry-After,
and bounds every call with the configured timeout. CircuitBreakerClient
wraps Client with sony/gobreaker and rejects calls with ErrCircuitOpen
while the service is failing.

# Errors

Any failed call returns *UpstreamError carrying the endpoint, its params
and the HTTP status, so callers can report exactly which request failed:

	var upErr *query.UpstreamError
	if errors.As(err, &upErr) {
		log.Printf("%s %v -> %d", upErr.Endpoint, upErr.Params, upErr.Status)
	}
*/
package query
