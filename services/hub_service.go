package services

import (
	"encoding/json"
	"log/slog"

	"blogicum/models"
)

// Notifier delivers realtime events to a user's open connections.
type Notifier interface {
	NotifyUser(userID uint, messageType string, data interface{})
}

type HubService struct {
	hub *models.Hub
}

func NewHubService() *HubService {
	hub := models.NewHub()
	service := &HubService{hub: hub}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

// Run owns the hub maps; every mutation goes through its channels.
func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case n := <-h.hub.Notify:
			h.deliver(n)
		}
	}
}

// NotifyUser queues a message for userID; it drops the message when the queue is full.
func (h *HubService) NotifyUser(userID uint, messageType string, data interface{}) {
	select {
	case h.hub.Notify <- models.Notification{UserID: userID, Type: messageType, Data: data}:
	default:
		slog.Warn("notification queue full, dropping message", "user_id", userID, "type", messageType)
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	h.hub.UserClients[client.UserID] = append(h.hub.UserClients[client.UserID], client)
	slog.Debug("websocket client registered", "client_id", client.ID, "user_id", client.UserID)
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	h.removeClient(client)
	slog.Debug("websocket client unregistered", "client_id", client.ID, "user_id", client.UserID)
}

func (h *HubService) removeClient(client *models.Client) {
	delete(h.hub.Clients, client)
	close(client.Send)

	clients := h.hub.UserClients[client.UserID]
	for i, c := range clients {
		if c == client {
			clients = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(clients) == 0 {
		delete(h.hub.UserClients, client.UserID)
	} else {
		h.hub.UserClients[client.UserID] = clients
	}
}

func (h *HubService) deliver(n models.Notification) {
	messageBytes, err := json.Marshal(models.WSMessage{Type: n.Type, Data: n.Data})
	if err != nil {
		slog.Error("marshal websocket message", "error", err)
		return
	}

	// copy: removeClient rewrites the slice
	clients := append([]*models.Client(nil), h.hub.UserClients[n.UserID]...)
	for _, client := range clients {
		select {
		case client.Send <- messageBytes:
		default:
			h.removeClient(client)
		}
	}
}
