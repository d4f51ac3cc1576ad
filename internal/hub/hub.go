// Package hub streams graph lifecycle events to browsers over Server-Sent
// Events, so that an open page can tell when the data graph was reloaded.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one broadcast event
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// client represents a connected SSE client
type client struct {
	id     string
	events chan []byte
}

// Hub manages SSE client connections
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan Message
	keepAlive  time.Duration
	logger     *slog.Logger
}

// New creates a new Hub
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message, 256),
		keepAlive:  30 * time.Second,
		logger:     logger,
	}
}

// Run starts the hub's event loop; it returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("SSE client connected", "client", c.id, "total", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.events)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("SSE client disconnected", "client", c.id, "total", n)

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Data)
			if err != nil {
				h.logger.Warn("failed to marshal event", "event", msg.Event, "error", err)
				continue
			}
			frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", msg.Event, data))

			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.events <- frame:
				default:
					h.logger.Debug("SSE client is slow, skipping message", "client", c.id)
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.events)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast sends an event to all connected clients
func (h *Hub) Broadcast(event string, data interface{}) {
	select {
	case h.broadcast <- Message{Event: event, Data: data}:
	default:
		h.logger.Warn("broadcast channel full, dropping event", "event", event)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles SSE connections
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c := &client{
		id:     uuid.NewString(),
		events: make(chan []byte, 64),
	}

	select {
	case h.register <- c:
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.unregister <- c:
		case <-time.After(time.Second):
		}
	}()

	fmt.Fprintf(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.events:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			_ = rc.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			_ = rc.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
