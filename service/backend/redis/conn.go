package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/viant/xqueue/service/backend"
)

// Conn wraps a single go-redis client.
type Conn struct {
	client *goredis.Client
}

// Pop runs BLPOP with no timeout.
func (c *Conn) Pop(ctx context.Context, key string) ([]byte, error) {
	values, err := c.client.BLPop(ctx, 0, key).Result()
	if err != nil {
		return nil, err
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected BLPOP reply: %v", values)
	}
	return []byte(values[1]), nil
}

// Push runs RPUSH.
func (c *Conn) Push(ctx context.Context, key string, payload []byte) error {
	return c.client.RPush(ctx, key, payload).Err()
}

// Incr runs INCR.
func (c *Conn) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

// Expire runs EXPIRE.
func (c *Conn) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

// Counter runs GET, mapping a missing key to 0.
func (c *Conn) Counter(ctx context.Context, key string) (int64, error) {
	value, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return value, err
}

// Len runs LLEN.
func (c *Conn) Len(ctx context.Context, key string) (int64, error) {
	return c.client.LLen(ctx, key).Result()
}

// Close closes the underlying client.
func (c *Conn) Close() error {
	if err := c.client.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}

var _ backend.Conn = (*Conn)(nil)
