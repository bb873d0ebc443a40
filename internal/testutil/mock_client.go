//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/khaled1988xaxaxa/trixMultiplayer-sub000/internal/protocol"
)

// MockClient is a testify mock over room.Client for assertion-heavy tests.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomID string) {
	m.Called(roomID)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

// SimpleClient records every message it is sent. Safe for use from the
// room's timer goroutine.
type SimpleClient struct {
	ID   string
	Name string

	mu       sync.Mutex
	roomID   string
	messages []*protocol.Message
}

// NewSimpleClient builds a recording client.
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, Name: name}
}

func (c *SimpleClient) GetID() string   { return c.ID }
func (c *SimpleClient) GetName() string { return c.Name }

func (c *SimpleClient) GetRoom() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *SimpleClient) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of everything received so far.
func (c *SimpleClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*protocol.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessagesOfType filters received messages by type.
func (c *SimpleClient) MessagesOfType(t protocol.MessageType) []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range c.Messages() {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

// LastOfType returns the most recent message of a type, nil when none.
func (c *SimpleClient) LastOfType(t protocol.MessageType) *protocol.Message {
	msgs := c.MessagesOfType(t)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}
