package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of connected chat-widget clients, keyed by session.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// A session reconnecting replaces its previous connection.
			if old, ok := h.clients[client.SessionID]; ok {
				close(old.send)
				delete(h.clients, client.SessionID)
			}
			h.clients[client.SessionID] = client
			h.mu.Unlock()
			log.Printf("💬 Chat session connected: %s", client.SessionID)

		case client := <-h.unregister:
			h.mu.Lock()
			// A replaced connection unregisters late; only drop the entry if
			// it still points at this client.
			if current, ok := h.clients[client.SessionID]; ok && current == client {
				delete(h.clients, client.SessionID)
				close(client.send)
				log.Printf("💬 Chat session disconnected: %s", client.SessionID)
			}
			h.mu.Unlock()
		}
	}
}

// SendToSession sends a message to one connected session.
func (h *Hub) SendToSession(sessionID string, message interface{}) bool {
	h.mu.RLock()
	client, ok := h.clients[sessionID]
	h.mu.RUnlock()

	if !ok {
		return false
	}

	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return false
	}

	select {
	case client.send <- jsonMsg:
		return true
	default:
		// Buffer full or client dead
		return false
	}
}
