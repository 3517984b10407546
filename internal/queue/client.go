package queue

import (
	"context"
	"sync"
)

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// MemoryClient records messages instead of sending them. Used in tests and
// local runs without SQS.
type MemoryClient struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

// Send records msg, or returns Err when set.
func (c *MemoryClient) Send(ctx context.Context, msg Message) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (c *MemoryClient) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}

var _ Client = (*MemoryClient)(nil)
