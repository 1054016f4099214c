// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package services

import (
	"context"
	"errors"

	"github.com/tomtom215/topiclens/internal/logging"
)

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
	GetClientCount() int
}

// HubService runs the WebSocket hub event loop under a supervisor.
type HubService struct {
	hub  ContextHub
	name string
}

// NewHubService wraps hub.
func NewHubService(hub ContextHub) *HubService {
	return &HubService{hub: hub, name: "websocket-hub"}
}

// Serve implements suture.Service.
func (h *HubService) Serve(ctx context.Context) error {
	err := h.hub.RunWithContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logging.Error().Err(err).Msg("WebSocket hub exited")
		return err
	}
	logging.Info().Int("clients", h.hub.GetClientCount()).Msg("WebSocket hub stopped")
	return err
}

func (h *HubService) String() string {
	return h.name
}
