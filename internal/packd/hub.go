package packd

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadEvent is broadcast to every subscribed connection when a
// character's pack is re-encoded with different content.
type ReloadEvent struct {
	CharacterID string `json:"character_id"`
	Hash        string `json:"hash"`
}

// Hub tracks subscribed /ws/reload connections and fans out ReloadEvents
// to all of them.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub returns an empty reload hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a connection, closing it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
}

// Broadcast sends event as JSON to every registered connection, dropping
// (and unregistering) any connection that fails to accept the write.
func (h *Hub) Broadcast(event ReloadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("packd: dropping reload subscriber: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}
