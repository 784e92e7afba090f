// Package notify delivers transfer outcomes to currently connected
// sessions. Delivery is best-effort: offline users are silently skipped
// and the registry is never the source of truth for anything.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus" // Structured logging
)

// writeWait bounds every push. A peer that stopped reading must not
// wedge the writer on a full send buffer.
const writeWait = 5 * time.Second

// Conn is the write side of one live connection. *websocket.Conn from
// gorilla/websocket satisfies it; tests use fakes.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Message is the envelope pushed over a live connection.
type Message struct {
	Type string `json:"type"` // Currently always "transaction"
	Data any    `json:"data"` // The enriched transaction payload
}

// client pairs a connection with a write mutex. Websocket connections
// tolerate only one concurrent writer, and two concurrent transfers can
// both target the same user.
type client struct {
	writeMu sync.Mutex
	conn    Conn
}

// Registry maps a user id to at most one live connection. It is owned
// by the server process and injected into whatever needs to push; there
// is no package-level state.
type Registry struct {
	mu      sync.Mutex
	clients map[uint]*client
}

// NewRegistry returns an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint]*client)}
}

// Register binds conn to userID, replacing and closing any prior
// connection for that user. Latest connection wins.
func (r *Registry) Register(userID uint, conn Conn) {
	r.mu.Lock()
	prev := r.clients[userID]
	r.clients[userID] = &client{conn: conn}
	r.mu.Unlock()
	if prev != nil && prev.conn != conn {
		_ = prev.conn.Close()
	}
}

// Unregister removes the registration for userID. Safe to call when no
// registration exists.
func (r *Registry) Unregister(userID uint) {
	r.mu.Lock()
	delete(r.clients, userID)
	r.mu.Unlock()
}

// Release removes the registration for userID only if it still points
// at conn. Connection teardown uses this so a stale reader loop cannot
// evict a newer connection that already replaced it.
func (r *Registry) Release(userID uint, conn Conn) {
	r.mu.Lock()
	if cl := r.clients[userID]; cl != nil && cl.conn == conn {
		delete(r.clients, userID)
	}
	r.mu.Unlock()
}

// NotifyTransaction pushes the transaction payload to the sender's and
// receiver's live connections, if any. A write failure counts as a
// closed connection: the registration is dropped and the transfer is
// unaffected.
func (r *Registry) NotifyTransaction(senderID, receiverID uint, data any) {
	msg := Message{Type: "transaction", Data: data}
	for _, id := range []uint{senderID, receiverID} {
		r.mu.Lock()
		cl := r.clients[id]
		r.mu.Unlock()
		if cl == nil {
			continue // offline, no queuing or retry
		}
		cl.writeMu.Lock()
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := cl.conn.WriteJSON(msg)
		cl.writeMu.Unlock()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": id,
				"error":   err.Error(),
			}).Warn("Dropping dead websocket connection")
			r.Release(id, cl.conn)
			_ = cl.conn.Close()
		}
	}
}
