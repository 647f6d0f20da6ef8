package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPChannel publishes messages as JSON to a durable RabbitMQ queue.
type AMQPChannel struct {
	conn  *amqp.Connection
	queue string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPChannel connects to url and declares queue.
func NewAMQPChannel(url, queue string) (*AMQPChannel, error) {
	url = strings.TrimSpace(url)
	queue = strings.TrimSpace(queue)
	if url == "" {
		return nil, errors.New("amqp url required")
	}
	if queue == "" {
		return nil, errors.New("amqp queue required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQPChannel{conn: conn, ch: ch, queue: queue}, nil
}

// Deliver publishes msg as a persistent message.
func (c *AMQPChannel) Deliver(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.ch.PublishWithContext(publishCtx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Type:         msg.Kind,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", c.queue, err)
	}
	return nil
}

// Close closes the channel and connection.
func (c *AMQPChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	chErr := c.ch.Close()
	connErr := c.conn.Close()
	return errors.Join(chErr, connErr)
}
