package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStreamConfig configures a stream-backed outbox.
type RedisStreamConfig struct {
	Addr     string
	Password string
	Stream   string
	MaxLen   int64
}

// RedisStreamChannel appends messages to a Redis stream for a downstream
// sender to consume.
type RedisStreamChannel struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStreamChannel dials Redis and returns the outbox.
func NewRedisStreamChannel(cfg RedisStreamConfig) (*RedisStreamChannel, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	return newRedisStreamChannel(redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Password}), cfg.Stream, cfg.MaxLen)
}

func newRedisStreamChannel(client *redis.Client, stream string, maxLen int64) (*RedisStreamChannel, error) {
	stream = strings.TrimSpace(stream)
	if stream == "" {
		return nil, errors.New("delivery stream required")
	}
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &RedisStreamChannel{client: client, stream: stream, maxLen: maxLen}, nil
}

// Deliver XADDs msg as a JSON payload keyed by kind and id.
func (c *RedisStreamChannel) Deliver(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.stream,
		MaxLen: c.maxLen,
		Approx: true,
		Values: map[string]any{
			"kind":    msg.Kind,
			"id":      msg.ID,
			"payload": string(payload),
		},
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", c.stream, err)
	}
	return nil
}

// Close releases the Redis client.
func (c *RedisStreamChannel) Close() error {
	return c.client.Close()
}
