// Package delivery hands outbound notifications and emails to whatever
// transport a deployment wires in.
package delivery

import (
	"context"
	"time"
)

const (
	KindPush  = "push"
	KindEmail = "email"
)

// Message is one outbound delivery.
type Message struct {
	Kind      string         `json:"kind"`
	ID        string         `json:"id"`
	Recipient string         `json:"recipient"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Template  string         `json:"template,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Targets   []string       `json:"targets,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Channel accepts a message for delivery. A nil error means the transport
// took ownership of it.
type Channel interface {
	Deliver(ctx context.Context, msg Message) error
}

// ChannelFunc adapts a function to Channel.
type ChannelFunc func(ctx context.Context, msg Message) error

func (f ChannelFunc) Deliver(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Simulated accepts every message without sending anything.
type Simulated struct{}

func (Simulated) Deliver(context.Context, Message) error {
	return nil
}
