// Package ws pushes note change events to connected clients. Connections
// are registered per user; a client only ever sees its own notes.
package ws

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

type Event struct {
	Type string       `json:"type"`
	Note *domain.Note `json:"note,omitempty"`
	ID   string       `json:"id,omitempty"`
}

// conn is the writable subset of *websocket.Conn; tests substitute fakes.
type conn interface {
	WriteJSON(v any) error
	Close() error
}

// client holds per-connection state. The mutex serializes writes: the
// underlying websocket supports at most one concurrent writer.
type client struct {
	userID string
	mu     sync.Mutex
}

type Hub struct {
	mu      sync.RWMutex
	clients map[conn]*client
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[conn]*client),
		log:     log,
	}
}

func (h *Hub) register(c conn, userID string) {
	h.mu.Lock()
	h.clients[c] = &client{userID: userID}
	h.mu.Unlock()
}

func (h *Hub) unregister(c conn) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.Close()
	}
	h.mu.Unlock()
}

// Broadcast sends ev to every connection registered for userID. Each write
// goes through the connection's client mutex so concurrent broadcasts never
// overlap on one socket. Clients that fail a write are dropped.
func (h *Hub) Broadcast(userID string, ev Event) {
	h.mu.RLock()
	targets := make(map[conn]*client)
	for c, cl := range h.clients {
		if cl.userID == userID {
			targets[c] = cl
		}
	}
	h.mu.RUnlock()

	var failed []conn
	for c, cl := range targets {
		cl.mu.Lock()
		err := c.WriteJSON(ev)
		cl.mu.Unlock()
		if err != nil {
			h.log.Warn().Err(err).Msg("websocket write failed, dropping client")
			failed = append(failed, c)
		}
	}

	for _, c := range failed {
		h.unregister(c)
	}
}

// Serve registers the connection and blocks reading until the client goes
// away. Incoming frames are discarded; the socket is push-only.
func (h *Hub) Serve(c *websocket.Conn, userID string) {
	h.register(c, userID)
	defer h.unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
