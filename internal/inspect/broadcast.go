package inspect

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// hub manages the WebSocket connections that receive tree snapshots.
type hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func newHub() *hub {
	return &hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Inspect server binds to loopback
			},
		},
	}
}

// handleWebSocket upgrades the connection, sends the initial payload if
// there is one, and holds the connection until the client disconnects.
func (h *hub) handleWebSocket(w http.ResponseWriter, req *http.Request, initial []byte) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	if initial != nil {
		if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
			conn.Close()
			return
		}
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast sends data to all connected clients, dropping the ones
// whose writes fail.
func (h *hub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		err := client.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// clientCount returns the number of connected clients.
func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// close closes all client connections.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
