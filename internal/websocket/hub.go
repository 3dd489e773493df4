// Package websocket pushes confirmation-list activity to connected
// organizer pages so the guest list updates without polling.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is a live-activity notification. Clients filter on EventID; the
// payload never includes anything a holder of the link code could not
// already see.
type Message struct {
	Type      string `json:"type"`
	EventID   int64  `json:"event_id"`
	GuestName string `json:"guest_name,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// Confirmed builds the notification for newly recorded confirmations.
func Confirmed(eventID int64, guestName string, count int) Message {
	return Message{Type: "confirmation_added", EventID: eventID, GuestName: guestName, Count: count}
}

// Cleared builds the notification for a wiped confirmation list.
func Cleared(eventID int64) Message {
	return Message{Type: "confirmations_cleared", EventID: eventID}
}

// EventDeleted builds the notification for a removed event.
func EventDeleted(eventID int64) Message {
	return Message{Type: "event_deleted", EventID: eventID}
}

// Hub maintains the set of active WebSocket clients and broadcasts messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
