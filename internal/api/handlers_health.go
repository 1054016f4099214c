// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/topiclens/internal/middleware"
	"github.com/tomtom215/topiclens/internal/query"
)

// pingTimeout bounds the query service check of the health endpoints.
const pingTimeout = 3 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status             string                     `json:"status"` // healthy or degraded
	Version            string                     `json:"version"`
	UptimeSeconds      float64                    `json:"uptimeSeconds"`
	QueryService       UpstreamStatus             `json:"queryService"`
	EnhancementEnabled bool                       `json:"enhancementEnabled"`
	Sessions           int                        `json:"sessions"`
	WebSocketClients   int                        `json:"websocketClients"`
	Endpoints          []middleware.EndpointStats `json:"endpoints,omitempty"`
}

// UpstreamStatus describes the remote query service.
type UpstreamStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Circuit    string `json:"circuit,omitempty"`
	Error      string `json:"error,omitempty"`
}

type breakerStater interface {
	State() gobreaker.State
}

func (h *Handler) checkQueryService(ctx context.Context) UpstreamStatus {
	if h.source == nil {
		return UpstreamStatus{}
	}

	status := UpstreamStatus{Configured: true}
	if b, ok := h.source.(breakerStater); ok {
		status.Circuit = query.StateToString(b.State())
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.source.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true
	return status
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	upstream := h.checkQueryService(r.Context())
	status := "healthy"
	if !upstream.Connected {
		status = "degraded"
	}

	health := HealthStatus{
		Status:             status,
		Version:            Version,
		UptimeSeconds:      time.Since(h.startTime).Seconds(),
		QueryService:       upstream,
		EnhancementEnabled: h.enhancing,
	}
	if h.executor != nil {
		health.Sessions = h.executor.SessionCount()
	}
	if h.wsHub != nil {
		health.WebSocketClients = h.wsHub.GetClientCount()
	}
	if h.perfMon != nil {
		health.Endpoints = h.perfMon.GetStats()
	}

	rw.Success(health)
}

// HealthLive handles GET /api/v1/health/live. It reports 200 while the
// process runs, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready. It reports 503 until the
// query service answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	upstream := h.checkQueryService(r.Context())
	if !upstream.Connected {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Query service not reachable", upstream)
		return
	}

	rw.Success(map[string]interface{}{
		"ready":        true,
		"queryService": upstream,
	})
}
