package server

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

const (
	// Write timeout per frame.
	writeWait = 10 * time.Second

	// Pong wait; the read deadline extends on every pong.
	pongWait = 60 * time.Second

	// Ping interval, must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Client is one connected player or spectator.
type Client struct {
	ID     string
	Name   string
	RoomID string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient wraps a fresh websocket connection.
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Name:   defaultName(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// defaultName labels connections that never declared a name.
func defaultName() string {
	return fmt.Sprintf("Player%04d", rand.IntN(10000))
}

// GetID implements room.Client.
func (c *Client) GetID() string { return c.ID }

// GetName implements room.Client.
func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Name
}

// SetName updates the display name declared in create/join commands.
func (c *Client) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name != "" {
		c.Name = name
	}
}

// GetRoom implements room.Client.
func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RoomID
}

// SetRoom implements room.Client.
func (c *Client) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RoomID = roomID
}

// SendMessage queues one message for delivery. Slow consumers are dropped
// rather than allowed to block the room.
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("encode error: %v", err)
		return
	}

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("⚠️ client %s send buffer full, disconnecting", c.Name)
		c.Close()
	}
}

// Close shuts the outbound channel exactly once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump pulls inbound frames and hands them to the command handler.
// Runs as one goroutine per connection; exits on any read error.
func (c *Client) ReadPump() {
	defer func() {
		c.server.handleDisconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("read error: %v", err)
			}
			break
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			log.Printf("decode error from %s: %v", c.Name, err)
			c.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.server.handler.Handle(c, msg)
	}
}

// WritePump pushes queued frames and keepalive pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
