package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const writeTimeout = 3 * time.Second

// Conn is the part of *websocket.Conn the hub uses.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// Hub fans messages out to the connections watching one session.
type Hub struct {
	mu      sync.Mutex
	clients map[Conn]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[Conn]struct{})}
}

// Add registers conn. It reports false, and closes conn, once the hub has
// been shut down.
func (h *Hub) Add(conn Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		_ = conn.Close(websocket.StatusGoingAway, "session closed")
		return false
	}
	h.clients[conn] = struct{}{}
	return true
}

func (h *Hub) Remove(conn Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes message to every client. Clients whose write fails are
// closed and dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.clients {
		if err := write(conn, message); err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()
}

// Send writes message to a single client.
func (h *Hub) Send(conn Conn, message []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return write(conn, message)
}

// Close disconnects every client and rejects later Adds.
func (h *Hub) Close() {
	h.mu.Lock()
	for conn := range h.clients {
		_ = conn.Close(websocket.StatusGoingAway, "session closed")
		delete(h.clients, conn)
	}
	h.closed = true
	h.mu.Unlock()
}

func write(conn Conn, message []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, message)
}
