// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/metrics"
	"github.com/tomtom215/topiclens/internal/models"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types.
const (
	MessageTypeVersionResult     = "version_result"
	MessageTypeAnalysisCompleted = "analysis_completed"
	MessageTypeSubscribe         = "subscribe"
	MessageTypePing              = "ping"
	MessageTypePong              = "pong"
)

// Message is a WebSocket frame. SessionID scopes delivery: clients
// subscribed to a session only receive that session's messages.
type Message struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data"`
}

// VersionResultData is sent as soon as one version of a query finishes.
type VersionResultData struct {
	Generation uint64                  `json:"generation"`
	Version    string                  `json:"version"`
	Result     *models.VersionedResult `json:"result,omitempty"`
	Error      *models.VersionError    `json:"error,omitempty"`
}

// AnalysisCompletedData closes a query run.
type AnalysisCompletedData struct {
	Generation uint64                 `json:"generation"`
	Timestamp  string                 `json:"timestamp"`
	DurationMS int64                  `json:"durationMs"`
	Report     *models.AnalysisReport `json:"report"`
}

// Hub tracks connected clients and fans messages out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a Hub. Call RunWithContext to start it.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext processes registrations and broadcasts until ctx is
// done, then closes every client and returns ctx.Err().
//
// Each iteration checks, in order: shutdown, client lifecycle events,
// then broadcasts, so client state is settled before a message is fanned
// out.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClientsLocked returns the clients in id order. mu must be held.
func (h *Hub) sortedClientsLocked() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers message in client id order. Clients whose
// send buffer is full are dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for _, client := range h.sortedClientsLocked() {
		if !client.Accepts(message.SessionID) {
			continue
		}
		select {
		case client.send <- message:
			metrics.WSMessagesSent.Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		metrics.WSErrors.WithLabelValues("slow_consumer").Inc()
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClientsLocked() {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// Publish enqueues msg without blocking. A full queue drops the message.
func (h *Hub) Publish(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		metrics.WSErrors.WithLabelValues("queue_full").Inc()
		logging.Warn().Str("message_type", msg.Type).Msg("broadcast channel full, dropping message")
	}
}

// BroadcastJSON sends an unscoped message to every client.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	h.Publish(Message{Type: messageType, Data: data})
}

// BroadcastVersionResult announces one finished version slot. Exactly one
// of result and verr is non-nil.
func (h *Hub) BroadcastVersionResult(sessionID string, generation uint64, version string, result *models.VersionedResult, verr *models.VersionError) {
	h.Publish(Message{
		Type:      MessageTypeVersionResult,
		SessionID: sessionID,
		Data: VersionResultData{
			Generation: generation,
			Version:    version,
			Result:     result,
			Error:      verr,
		},
	})
}

// BroadcastAnalysisCompleted announces a finished report.
func (h *Hub) BroadcastAnalysisCompleted(report *models.AnalysisReport) {
	h.Publish(Message{
		Type:      MessageTypeAnalysisCompleted,
		SessionID: report.SessionID,
		Data: AnalysisCompletedData{
			Generation: report.Generation,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			DurationMS: report.DurationMS,
			Report:     report,
		},
	})
	logging.Debug().
		Str("session_id", report.SessionID).
		Uint64("generation", report.Generation).
		Int("clients", h.GetClientCount()).
		Msg("broadcast analysis_completed")
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage encodes msg as JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
