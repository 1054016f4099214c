// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package query

import (
	"errors"
	"fmt"
)

var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("query service circuit breaker open")

	// ErrRateLimited is returned when HTTP 429 persists after every retry.
	ErrRateLimited = errors.New("rate limit exceeded (HTTP 429)")
)

// UpstreamError describes a failed query service call.
type UpstreamError struct {
	Endpoint string
	Params   map[string]interface{}
	Status   int // HTTP status, 0 when no response was received
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Endpoint, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
