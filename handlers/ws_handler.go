package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketHandler streams comment notifications to logged-in users.
type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
}

func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hubService: hubService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r, allowedOrigins)
			},
		},
	}
}

func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "user_id", user.ID, "error", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, user.ID)
	slog.Info("websocket connected", "client_id", client.ID, "user_id", user.ID)

	client.Hub.Register <- client
	go wh.writePump(client)
	go wh.readPump(client)
}

func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		slog.Info("websocket disconnected", "client_id", client.ID, "user_id", client.UserID)
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket closed unexpectedly", "client_id", client.ID, "error", err)
			}
			return
		}

		var wsMessage models.WSMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			slog.Debug("invalid websocket message", "client_id", client.ID, "error", err)
			continue
		}

		switch wsMessage.Type {
		case "client_connect":
			response, err := json.Marshal(models.WSMessage{
				Type: "client_connected",
				Data: map[string]string{"client_id": client.ID},
			})
			if err != nil {
				continue
			}
			select {
			case client.Send <- response:
			default:
				slog.Warn("websocket send buffer full", "client_id", client.ID)
			}
		default:
			slog.Debug("unknown websocket message type", "type", wsMessage.Type, "client_id", client.ID)
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := client.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// flush whatever queued up meanwhile in the same frame
			n := len(client.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-client.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// originAllowed accepts same-host origins and the configured ones.
func originAllowed(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
