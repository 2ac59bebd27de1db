package ws

import (
	"log"

	"github.com/gorilla/websocket"

	"github.com/sharelist/backend/internal/metrics"
	"github.com/sharelist/backend/internal/protocol"
	"github.com/sharelist/backend/internal/tenant"
)

// runSession drives one connection from subscribe to teardown. The write
// pump runs in its own goroutine; the read loop runs here, on the handler's
// goroutine. Subscribing before the read loop starts guarantees the client
// sees init before any update it could itself trigger.
func (s *Server) runSession(conn *websocket.Conn, t *tenant.Tenant) {
	c := newClient(conn, s.cfg.WS.SendBuffer)
	go c.writePump()

	if err := t.Subscribe(c); err != nil {
		log.Printf("session %s: subscribe to %q failed: %v", c.id, t.Name(), err)
		c.close()
		conn.Close()
		return
	}

	metrics.ConnectedClients.Inc()
	log.Printf("session %s: connected to %q from %s", c.id, t.Name(), conn.RemoteAddr())

	defer func() {
		t.Unsubscribe(c)
		c.close()
		conn.Close()
		metrics.ConnectedClients.Dec()
		log.Printf("session %s: disconnected from %q", c.id, t.Name())
	}()

	s.readLoop(c, t)
}

// readLoop reads frames until the peer goes away or a fatal error occurs.
// Malformed frames are logged and skipped; only transport errors and
// persist failures end the session.
func (s *Server) readLoop(c *client, t *tenant.Tenant) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		msg, err := protocol.ParseClient(data)
		if err != nil {
			log.Printf("session %s: dropping frame: %v", c.id, err)
			continue
		}

		switch msg.Type {
		case protocol.TypePing:
			s.handlePing(c)
		case protocol.TypeToggle:
			if !s.handleToggle(c, t, msg.Label) {
				return
			}
		}
	}
}

// handlePing answers on this session's sink only.
func (s *Server) handlePing(c *client) {
	frame, err := protocol.Encode(protocol.Pong())
	if err != nil {
		log.Printf("session %s: encoding pong: %v", c.id, err)
		return
	}
	c.Enqueue(frame)
}

// handleToggle runs the read-modify-write-persist-broadcast cycle. The
// write lock is held only for the mutation and clone, inside Tenant.Toggle;
// persist and broadcast work on the clone. It reports false when the
// session must close (persist failure: the on-disk snapshot is the source
// of truth on restart, so diverging from it silently is worse than making
// this client reconnect).
func (s *Server) handleToggle(c *client, t *tenant.Tenant, label string) bool {
	items, found := t.Toggle(label)
	if !found {
		log.Printf("session %s: toggle for unknown label %q on %q", c.id, label, t.Name())
	}

	if err := s.store.Save(t.Name(), items); err != nil {
		log.Printf("session %s: persisting %q failed, closing: %v", c.id, t.Name(), err)
		metrics.PersistFailuresTotal.Inc()
		return false
	}

	frame, err := protocol.Encode(protocol.Update(items))
	if err != nil {
		log.Printf("session %s: encoding update: %v", c.id, err)
		return true
	}

	t.Broadcast(frame)
	metrics.TogglesTotal.WithLabelValues(t.Name()).Inc()
	metrics.BroadcastsTotal.WithLabelValues(t.Name()).Inc()
	return true
}
