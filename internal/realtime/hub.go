// Package realtime pushes state changes to the browser tabs of a visitor
// session over WebSocket.
package realtime

import (
	"context"
	"log"
	"sync"
)

type envelope struct {
	sessionID string
	data      []byte
}

// Hub maintains the set of active WebSocket clients, grouped by session,
// and delivers messages to the clients of one session.
type Hub struct {
	// Registered clients by session id
	clients map[string]map[*Client]bool

	// Outbound messages
	publish chan envelope

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		publish:    make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main event loop until ctx is done.
// This should be called once, in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.sessionID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.sessionID] = set
			}
			set[client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client connected for session %s (total: %d)", client.sessionID, h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()
			log.Printf("WebSocket client disconnected for session %s (total: %d)", client.sessionID, h.ClientCount())

		case msg := <-h.publish:
			h.mu.Lock()
			for client := range h.clients[msg.sessionID] {
				select {
				case client.send <- msg.data:
				default:
					// Client send buffer full, close connection
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			log.Println("WebSocket hub stopped")
			return
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.sessionID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.sessionID)
	}
}

// Publish queues data for every client of a session.
func (h *Hub) Publish(sessionID string, data []byte) {
	select {
	case h.publish <- envelope{sessionID: sessionID, data: data}:
	default:
		log.Println("Publish channel full, dropping message")
	}
}

// Register adds a client to the hub. Once the hub has stopped the client
// is closed straight away.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client from the hub. It does not block once the hub
// has stopped; every client was closed on the way out.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Client represents a WebSocket client connection.
type Client struct {
	sessionID string
	send      chan []byte
}

// NewClient creates a new WebSocket client for a session.
func NewClient(sessionID string) *Client {
	return &Client{
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
}

// SessionID returns the session the client belongs to.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Send returns the send channel for the client. It is closed when the hub
// drops the client.
func (c *Client) Send() <-chan []byte {
	return c.send
}
