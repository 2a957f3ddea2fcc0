package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub tracks live clients grouped by the post they are watching.
type Hub struct {
	Clients     map[*Client]bool
	Publish     chan Event
	Register    chan *Client
	Unregister  chan *Client
	PostClients map[uint][]*Client
}

type Client struct {
	ID     string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	PostID uint
	UserID uint
}

// Event is a live update scoped to one post.
type Event struct {
	PostID uint
	Type   string
	Data   interface{}
}

type WSMessage struct {
	Type     string      `json:"type"`
	PostID   uint        `json:"post_id,omitempty"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:     make(map[*Client]bool),
		Publish:     make(chan Event, 64),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		PostClients: make(map[uint][]*Client),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, postID, userID uint) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		PostID: postID,
		UserID: userID,
	}
}
