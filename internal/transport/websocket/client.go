package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type connection struct {
	conn *websocket.Conn
	// conn.WriteJSON is not safe for concurrent use
	writeMu sync.Mutex
}

// ConnectionManager tracks the live sockets by connection ID.
type ConnectionManager struct {
	connections map[string]*connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*connection),
	}
}

func (cm *ConnectionManager) AddConnection(connID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[connID] = &connection{conn: conn}
}

// RemoveConnection closes and forgets the socket.
func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if c, exists := cm.connections[connID]; exists {
		c.conn.Close()
		delete(cm.connections, connID)
	}
}

// SendMessage writes one JSON message. A connection that is already gone is
// not an error.
func (cm *ConnectionManager) SendMessage(connID string, message ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.connections[connID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// CloseAll sends a going-away close frame to every socket and drops them. The
// HTTP server does not track hijacked connections, so this runs on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	open := make([]*connection, 0, len(cm.connections))
	for id, c := range cm.connections {
		open = append(open, c)
		delete(cm.connections, id)
	}
	cm.mu.Unlock()

	if len(open) == 0 {
		return
	}
	slog.Info("[WS] Closing open connections", "count", len(open))
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, c := range open {
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.conn.Close()
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
