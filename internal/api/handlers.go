// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/topiclens/internal/config"
	"github.com/tomtom215/topiclens/internal/datasets"
	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/middleware"
	"github.com/tomtom215/topiclens/internal/pipeline"
	"github.com/tomtom215/topiclens/internal/query"
	ws "github.com/tomtom215/topiclens/internal/websocket"
)

// Version is reported by the health endpoint. Set at build time.
var Version = "dev"

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health and probes
//   - handlers_datasets.go: registry and version listing
//   - handlers_analyze.go: analysis, sessions and WebSocket
type Handler struct {
	config    *config.Config
	executor  *pipeline.Executor
	source    query.Service // nil when no query service is configured
	registry  *datasets.Registry
	wsHub     *ws.Hub
	perfMon   *middleware.PerformanceMonitor
	enhancing bool
	startTime time.Time
}

// NewHandler creates a new API handler.
//
//	handler := api.NewHandler(cfg, executor, source, registry, hub)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(cfg *config.Config, executor *pipeline.Executor, source query.Service, registry *datasets.Registry, hub *ws.Hub) *Handler {
	return &Handler{
		config:    cfg,
		executor:  executor,
		source:    source,
		registry:  registry,
		wsHub:     hub,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		enhancing: cfg != nil && cfg.Enhance.Enabled,
		startTime: time.Now(),
	}
}

// PerformanceMonitor returns the monitor fed by the router middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; an empty one would bypass CORS.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
