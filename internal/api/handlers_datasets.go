// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ListDatasets handles GET /api/v1/datasets.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.registry.List())
}

// GetDataset handles GET /api/v1/datasets/{id}.
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	dataset, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(dataset)
}

// ListVersions handles GET /api/v1/datasets/{id}/versions. Unregistered
// ids are passed through; the query service decides what exists.
func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.source == nil {
		rw.ServiceUnavailable("Query service not configured")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		rw.BadRequest("Dataset id is required")
		return
	}

	versions, err := h.source.ListVersions(r.Context(), id)
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(versions)
}
