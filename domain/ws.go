package domain

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

type WebSocketErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Message is the outbound envelope written to a participant's channel.
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// Command is the inbound envelope read from a participant's channel.
type Command struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Identity is what the session store resolves a credential to.
type Identity struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TenantTag string `json:"tenant_tag"`
}

type Participant struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	TenantTag      string     `json:"tenant_tag"`
	CurrentRoom    string     `json:"current_room,omitempty"`
	Online         bool       `json:"online"`
	LastSeen       time.Time  `json:"last_seen"`
	DisconnectedAt *time.Time `json:"disconnected_at,omitempty"`
}

type Client struct {
	ID        string
	Username  string
	TenantTag string
	Send      chan []byte
	Conn      *websocket.Conn
	WriteLock sync.Mutex
	Done      chan struct{}
	closeOnce sync.Once
}

func NewClient(identity Identity, conn *websocket.Conn) *Client {
	return &Client{
		ID:        identity.UserID,
		Username:  identity.Username,
		TenantTag: identity.TenantTag,
		Send:      make(chan []byte, 256),
		Conn:      conn,
		Done:      make(chan struct{}),
	}
}

// Close signals the pumps to stop. Send is never closed so late publishers cannot panic.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Done)
	})
}

func (c *Client) Identity() Identity {
	return Identity{UserID: c.ID, Username: c.Username, TenantTag: c.TenantTag}
}
