// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package query

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/topiclens/internal/config"
)

const treeFixture = `{"success":true,"data":{"channelId":"base","version":2,"tree":{
	"messages":{
		"m1":{"fromUserId":1,"fromUserName":"alice","topicId":0},
		"m2":{"fromUserId":"2","fromUserName":"bob","topicId":0},
		"m3":{"fromUserId":1,"fromUserName":"alice","topicId":1}
	},
	"topics":{"0":{"name":"Protocol Launch"},"1":{"title":"Gas Fees"}}
}}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(&config.QueryConfig{
		URL:        server.URL + "/",
		APIKey:     "secret",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
	})
	c.retryBaseDelay = time.Millisecond
	return c
}

func decodeBody(t *testing.T, r *http.Request) requestBody {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body requestBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return body
}

func TestClient_FetchTree(t *testing.T) {
	var got requestBody
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/query" {
			t.Errorf("request = %s %s, want POST /query", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("Authorization = %q", auth)
		}
		got = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(treeFixture))
	})

	resp, err := c.FetchTree(context.Background(), "base", "2")
	if err != nil {
		t.Fatalf("FetchTree() error = %v", err)
	}

	if got.Endpoint != EndpointChannelTree {
		t.Errorf("endpoint = %q, want %q", got.Endpoint, EndpointChannelTree)
	}
	if got.Params["channelId"] != "base" || got.Params["version"] != "2" {
		t.Errorf("params = %v", got.Params)
	}
	if resp.ChannelID != "base" || resp.Version != "2" {
		t.Errorf("response labels = %q/%q, want base/2", resp.ChannelID, resp.Version)
	}
	if n := resp.Tree.MessageCount(); n != 3 {
		t.Fatalf("messages = %d, want 3", n)
	}
	for i, want := range []string{"m1", "m2", "m3"} {
		if id := resp.Tree.Messages[i].ID; id != want {
			t.Errorf("message[%d] = %q, want %q", i, id, want)
		}
	}
	if resp.Tree.Messages[1].FromUserID != 2 {
		t.Errorf("string user id not coerced: %d", resp.Tree.Messages[1].FromUserID)
	}
	if resp.Tree.Topics[1].Title != "Gas Fees" {
		t.Errorf("topics = %v", resp.Tree.Topics)
	}
}

func TestClient_UserEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) error
		endpoint string
		param    string
	}{
		{
			name: "single user",
			call: func(c *Client) error {
				_, err := c.FetchTreeByUser(context.Background(), "base", "1", 42)
				return err
			},
			endpoint: EndpointChannelTreeByUser,
			param:    "userId",
		},
		{
			name: "multiple users",
			call: func(c *Client) error {
				_, err := c.FetchTreeByUsers(context.Background(), "base", "1", []int64{1, 2})
				return err
			},
			endpoint: EndpointChannelTreeByUsers,
			param:    "userIds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got requestBody
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = decodeBody(t, r)
				_, _ = w.Write([]byte(`{"success":true,"data":{"tree":{"messages":{}}}}`))
			})

			if err := tt.call(c); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if got.Endpoint != tt.endpoint {
				t.Errorf("endpoint = %q, want %q", got.Endpoint, tt.endpoint)
			}
			if _, ok := got.Params[tt.param]; !ok {
				t.Errorf("params %v missing %q", got.Params, tt.param)
			}
		})
	}
}

func TestClient_ListVersions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"version":1,"createdAt":"2026-01-01T00:00:00Z","messageCount":10,"topicCount":2},
			{"version":"2","messageCount":12,"topicCount":3}
		]}`))
	})

	versions, err := c.ListVersions(context.Background(), "base")
	if err != nil {
		t.Fatalf("ListVersions() error = %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("len = %d, want 2", len(versions))
	}
	if versions[0].Version != "1" || versions[1].Version != "2" {
		t.Errorf("versions = %+v", versions)
	}
	if versions[1].TopicCount != 3 {
		t.Errorf("topicCount = %d, want 3", versions[1].TopicCount)
	}
}

func TestClient_ListVersionsNullData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})

	versions, err := c.ListVersions(context.Background(), "base")
	if err != nil {
		t.Fatalf("ListVersions() error = %v", err)
	}
	if versions == nil || len(versions) != 0 {
		t.Errorf("versions = %#v, want empty slice", versions)
	}
}

func TestClient_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"http error", http.StatusInternalServerError, "database unavailable", 500, "database unavailable"},
		{"service error", http.StatusOK, `{"success":false,"error":"channel not found"}`, 200, "channel not found"},
		{"service error without message", http.StatusOK, `{"success":false}`, 200, "unknown error"},
		{"malformed envelope", http.StatusOK, `not json`, 200, "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.FetchTree(context.Background(), "base", "3")
			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("error = %v, want *UpstreamError", err)
			}
			if upErr.Endpoint != EndpointChannelTree {
				t.Errorf("Endpoint = %q", upErr.Endpoint)
			}
			if upErr.Params["version"] != "3" {
				t.Errorf("Params = %v", upErr.Params)
			}
			if upErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", upErr.Status, tt.wantStatus)
			}
			if !strings.Contains(upErr.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", upErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(treeFixture))
	})

	if _, err := c.FetchTree(context.Background(), "base", "2"); err != nil {
		t.Fatalf("FetchTree() error = %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestClient_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.FetchTree(context.Background(), "base", "2")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
	var upErr *UpstreamError
	if !errors.As(err, &upErr) || upErr.Status != http.StatusTooManyRequests {
		t.Errorf("error = %v, want UpstreamError with status 429", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", n)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchTree(ctx, "base", "1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestClient_Ping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"healthy", http.StatusOK, false},
		{"unhealthy", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/health" {
					t.Errorf("request = %s %s, want GET /health", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
			})

			err := c.Ping(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Ping() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClient_RateLimiter(t *testing.T) {
	if c := NewClient(&config.QueryConfig{URL: "http://x"}); c.limiter != nil {
		t.Error("limiter should be nil when RateLimit is 0")
	}
	c := NewClient(&config.QueryConfig{URL: "http://x", RateLimit: 2, RateBurst: 0})
	if c.limiter == nil || c.limiter.Burst() != 1 {
		t.Errorf("limiter = %v, want burst 1", c.limiter)
	}
}

func TestReadBodyForError_Truncates(t *testing.T) {
	body := readBodyForError(strings.NewReader(strings.Repeat("x", maxErrorBodySize+10)))
	if !strings.HasSuffix(string(body), "(truncated)") {
		t.Error("expected truncation marker")
	}
}
