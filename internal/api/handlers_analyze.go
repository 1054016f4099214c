// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/models"
	ws "github.com/tomtom215/topiclens/internal/websocket"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	models.QueryRequest
	SessionID string `json:"sessionId,omitempty"`
}

// AnalyzeTreeRequest is the body of POST /analyze/tree.
type AnalyzeTreeRequest struct {
	Tree    *models.RawTree     `json:"tree"`
	Request models.QueryRequest `json:"request"`
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AnalyzeRequest
	if !decodeJSONBody(rw, r, &req) {
		return
	}

	ctx := r.Context()
	if h.config != nil && h.config.Server.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Server.Timeout)
		defer cancel()
	}

	report, err := h.executor.Execute(ctx, strings.TrimSpace(req.SessionID), req.QueryRequest)
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}

	if report.Failed() {
		rw.UpstreamError("Every requested version failed", report.Errors)
		return
	}
	rw.Success(report)
}

// AnalyzeTree handles POST /api/v1/analyze/tree.
func (h *Handler) AnalyzeTree(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AnalyzeTreeRequest
	if !decodeJSONBody(rw, r, &req) {
		return
	}
	// An absent tree yields the empty result rather than an error.
	result, err := h.executor.AnalyzeTree(req.Tree, req.Request)
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(result)
}

// ResetSession handles DELETE /api/v1/sessions/{id}.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	if !h.executor.ResetSession(id) {
		rw.NotFound("session not found")
		return
	}

	logging.Ctx(logging.ContextWithSessionID(r.Context(), id)).Info().Msg("Session reset")
	rw.Success(map[string]interface{}{"sessionId": id, "reset": true})
}

// WebSocket handles GET /api/v1/ws. The optional session query parameter
// scopes the stream to one session.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).ServiceUnavailable("WebSocket service unavailable")
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn, r.URL.Query().Get("session"))
	h.wsHub.Register <- client
	client.Start()
}
