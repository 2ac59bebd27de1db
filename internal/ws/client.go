package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client pairs a WebSocket connection with its outbound frame queue. The
// queue is the session's subscriber sink: the session's own read loop and
// any other session broadcasting on the same tenant produce into it, and a
// single writePump goroutine drains it onto the socket.
type client struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(conn *websocket.Conn, buffer int) *client {
	if buffer <= 0 {
		buffer = 64
	}
	return &client{
		id:   uuid.NewString()[:8],
		conn: conn,
		send: make(chan []byte, buffer),
	}
}

// Enqueue offers a frame to the queue without blocking. It reports false
// when the session is gone or the queue is full; the caller prunes the sink
// in that case.
func (c *client) Enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close shuts the queue. Producers racing with close see closed == true
// under the mutex instead of sending on a closed channel.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump owns the write side of the connection. It exits when the queue
// closes or a write fails; a write failure also closes the socket, which
// unblocks the session's read loop.
func (c *client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}
