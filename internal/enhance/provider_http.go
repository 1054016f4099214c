// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package enhance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const (
	maxErrorBodySize    = 4 * 1024
	maxResponseBodySize = 256 * 1024
)

// HTTPProvider calls a JSON enhancement service.
type HTTPProvider struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPProvider creates a provider posting to url.
func NewHTTPProvider(url, apiKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPProvider{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Name implements Summarizer.
func (p *HTTPProvider) Name() string { return "http" }

type httpResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Error   string `json:"error"`
}

// Summarize implements Summarizer.
func (p *HTTPProvider) Summarize(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode enhancement request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("enhancement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return "", fmt.Errorf("%w: status %d: %s", ErrUnsuccessful, resp.StatusCode, snippet)
	}

	var out httpResponse
	// A body cut off at the limit fails to decode and counts as malformed.
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "unknown error"
		}
		return "", fmt.Errorf("%w: %s", ErrUnsuccessful, msg)
	}
	return out.Text, nil
}
