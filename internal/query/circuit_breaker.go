// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/topiclens/internal/config"
	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/metrics"
)

// BreakerName labels the query service breaker in metrics and logs.
const BreakerName = "query-service"

// CircuitBreakerClient wraps Client with a circuit breaker.
//
// The breaker uses wall-clock time for its interval and timeout, so tests
// exercise the wrapped Client directly and only check that the breaker
// trips and rejects.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a breaker-protected client:
//   - at most 3 requests in half-open state
//   - counts reset every minute while closed
//   - 2 minutes open before probing again
//   - opens at a 60% failure rate over at least 10 requests
func NewCircuitBreakerClient(cfg *config.QueryConfig) *CircuitBreakerClient {
	return newCircuitBreakerClient(NewClient(cfg), BreakerName)
}

func newCircuitBreakerClient(client *Client, name string) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// A caller giving up is not a service failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := StateToString(from)
			toStr := StateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(StateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   name,
	}
}

// State returns the current breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// execute runs fn through the breaker. Rejections are reported as
// ErrCircuitOpen.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", cbc.name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		counts := cbc.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// StateToFloat converts a breaker state to its metric value.
func StateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// StateToString converts a breaker state to its log label.
func StateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ping checks connectivity with breaker protection.
func (cbc *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Ping(ctx)
	})
	return err
}

// FetchTree retrieves a channel version tree with breaker protection.
func (cbc *CircuitBreakerClient) FetchTree(ctx context.Context, channelID, version string) (*TreeResponse, error) {
	return castResult[TreeResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchTree(ctx, channelID, version)
	}))
}

// FetchTreeByUser retrieves a single-user tree with breaker protection.
func (cbc *CircuitBreakerClient) FetchTreeByUser(ctx context.Context, channelID, version string, userID int64) (*TreeResponse, error) {
	return castResult[TreeResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchTreeByUser(ctx, channelID, version, userID)
	}))
}

// FetchTreeByUsers retrieves a multi-user tree with breaker protection.
func (cbc *CircuitBreakerClient) FetchTreeByUsers(ctx context.Context, channelID, version string, userIDs []int64) (*TreeResponse, error) {
	return castResult[TreeResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchTreeByUsers(ctx, channelID, version, userIDs)
	}))
}

// ListVersions lists channel versions with breaker protection.
func (cbc *CircuitBreakerClient) ListVersions(ctx context.Context, channelID string) ([]VersionInfo, error) {
	out, err := castResult[[]VersionInfo](cbc.execute(func() (interface{}, error) {
		versions, err := cbc.client.ListVersions(ctx, channelID)
		if err != nil {
			return nil, err
		}
		return &versions, nil
	}))
	if err != nil {
		return nil, err
	}
	return *out, nil
}
