// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package query

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestCircuitBreakerClient_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(treeFixture))
	})
	cbc := newCircuitBreakerClient(c, "test-success")

	resp, err := cbc.FetchTree(context.Background(), "base", "2")
	if err != nil {
		t.Fatalf("FetchTree() error = %v", err)
	}
	if resp.Tree.MessageCount() != 3 {
		t.Errorf("messages = %d, want 3", resp.Tree.MessageCount())
	}
	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed", StateToString(cbc.State()))
	}
}

func TestCircuitBreakerClient_TripsAndRejects(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	c.maxRetries = 0
	cbc := newCircuitBreakerClient(c, "test-trip")

	for i := 0; i < 10; i++ {
		_, err := cbc.FetchTree(context.Background(), "base", "1")
		var upErr *UpstreamError
		if !errors.As(err, &upErr) {
			t.Fatalf("call %d: error = %v, want *UpstreamError", i, err)
		}
	}

	if cbc.State() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", StateToString(cbc.State()))
	}

	_, err := cbc.FetchTree(context.Background(), "base", "1")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if n := calls.Load(); n != 10 {
		t.Errorf("server calls = %d, want 10", n)
	}
}

func TestCircuitBreakerClient_CanceledIsNotFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	cbc := newCircuitBreakerClient(c, "test-cancel")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 12; i++ {
		_, _ = cbc.FetchTree(ctx, "base", "1")
	}

	if cbc.State() != gobreaker.StateClosed {
		t.Errorf("state = %s, want closed", StateToString(cbc.State()))
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		value float64
		label string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := StateToFloat(tt.state); got != tt.value {
			t.Errorf("StateToFloat(%v) = %v, want %v", tt.state, got, tt.value)
		}
		if got := StateToString(tt.state); got != tt.label {
			t.Errorf("StateToString(%v) = %q, want %q", tt.state, got, tt.label)
		}
	}
}

func TestCastResult(t *testing.T) {
	if _, err := castResult[TreeResponse]("wrong", nil); err == nil {
		t.Error("expected type assertion error")
	}
	sentinel := errors.New("boom")
	if _, err := castResult[TreeResponse](nil, sentinel); !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want sentinel", err)
	}
}
