// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package query

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/topiclens/internal/config"
	"github.com/tomtom215/topiclens/internal/metrics"
)

// maxErrorBodySize limits how much of an error response body is kept.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads at most maxErrorBodySize bytes of r, marking
// truncation.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// Service is the set of query service operations used by the pipeline.
// It is implemented by Client and CircuitBreakerClient.
type Service interface {
	Ping(ctx context.Context) error
	FetchTree(ctx context.Context, channelID, version string) (*TreeResponse, error)
	FetchTreeByUser(ctx context.Context, channelID, version string, userID int64) (*TreeResponse, error)
	FetchTreeByUsers(ctx context.Context, channelID, version string, userIDs []int64) (*TreeResponse, error)
	ListVersions(ctx context.Context, channelID string) ([]VersionInfo, error)
}

// Client talks to the query service over HTTP.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a query service client. A zero RateLimit disables
// outbound pacing.
func NewClient(cfg *config.QueryConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		apiKey:         cfg.APIKey,
		client:         &http.Client{Timeout: timeout},
		limiter:        limiter,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: baseDelay,
	}
}

type requestBody struct {
	Endpoint string                 `json:"endpoint"`
	Params   map[string]interface{} `json:"params"`
}

type responseEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// doRequestWithRateLimit sends a request, retrying HTTP 429 responses with
// exponential backoff (base, 2*base, 4*base, ...). Retry-After overrides the
// computed delay.
func (c *Client) doRequestWithRateLimit(ctx context.Context, method, reqURL string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter wait: %w", err)
			}
		}

		var reader io.Reader = http.NoBody
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()
		metrics.QueryServiceRateLimited.Inc()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("%w after %d retries", ErrRateLimited, c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// makeRequest calls endpoint with params and decodes the data field of a
// successful response into result. result may be nil.
func (c *Client) makeRequest(ctx context.Context, endpoint string, params map[string]interface{}, result interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordQueryServiceCall(endpoint, time.Since(start), err)
	}()

	fail := func(status int, msg string, cause error) error {
		return &UpstreamError{Endpoint: endpoint, Params: params, Status: status, Message: msg, Err: cause}
	}

	body, err := json.Marshal(requestBody{Endpoint: endpoint, Params: params})
	if err != nil {
		return fail(0, "failed to encode request", err)
	}

	resp, err := c.doRequestWithRateLimit(ctx, http.MethodPost, c.baseURL+"/query", body)
	if err != nil {
		status := 0
		if errors.Is(err, ErrRateLimited) {
			status = http.StatusTooManyRequests
		}
		return fail(status, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(resp.StatusCode, string(readBodyForError(resp.Body)), nil)
	}

	var envelope responseEnvelope
	if err := decodeJSONResponse(resp, &envelope); err != nil {
		return fail(resp.StatusCode, "failed to decode response", err)
	}
	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "unknown error"
		}
		return fail(resp.StatusCode, msg, nil)
	}

	if result == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fail(resp.StatusCode, "malformed response data", err)
	}
	return nil
}

func decodeJSONResponse(resp *http.Response, result interface{}) error {
	decoder := json.NewDecoder(resp.Body)
	return decoder.Decode(result)
}

// Ping checks that the query service answers GET {baseURL}/health.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.doRequestWithRateLimit(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to ping query service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("query service ping failed with status: %d", resp.StatusCode)
	}
	return nil
}
