package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/gorilla/websocket" // WebSocket upgrade and transport
	"github.com/sirupsen/logrus"   // Structured logging

	"github.com/Zagreus0809/School-Digital-Wallet/internal/notify" // Connection registry
)

// wsUpgrader upgrades HTTP requests to websocket connections. The
// browser client is served from another origin in development, so the
// origin check is left open.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsClientMessage is the only message clients send: an auth declaration
// binding the connection to a user
type wsClientMessage struct {
	Type   string `json:"type"`   // Expected to be "auth"
	UserID uint   `json:"userId"` // User to bind this connection to
}

// WebSocketHandler upgrades the request and runs the read loop. The
// first auth message registers the connection in the notification
// registry; unauthenticated connections receive no pushes. Closing the
// socket (or any read error) releases the registration.
func WebSocketHandler(registry *notify.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil) // Upgrade to websocket
		if err != nil {
			logrus.WithField("error", err.Error()).Warn("WebSocket upgrade failed")
			return
		}
		var boundUser uint // 0 until an auth message arrives
		defer func() {
			if boundUser != 0 {
				// Release only our own registration; a newer connection
				// for the same user must not be evicted
				registry.Release(boundUser, conn)
			}
			_ = conn.Close()
		}()
		for {
			var msg wsClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return // Closed or malformed stream ends the session
			}
			// Handle the auth declaration; anything else is ignored
			if msg.Type == "auth" && msg.UserID != 0 {
				boundUser = msg.UserID
				registry.Register(boundUser, conn) // Latest connection wins
				logrus.WithField("user_id", boundUser).Info("WebSocket client authenticated")
			}
		}
	}
}
