package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Hub struct {
	Clients     map[*Client]bool
	Register    chan *Client
	Unregister  chan *Client
	Notify      chan Notification
	UserClients map[uint][]*Client
}

type Client struct {
	ID     string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// Notification is delivered to every open connection of UserID.
type Notification struct {
	UserID uint
	Type   string
	Data   interface{}
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

// CommentNotification is sent to a post author when someone comments on the post.
type CommentNotification struct {
	PostID    uint   `json:"post_id"`
	PostTitle string `json:"post_title"`
	CommentID uint   `json:"comment_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:     make(map[*Client]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		Notify:      make(chan Notification, 64),
		UserClients: make(map[uint][]*Client),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}
}
