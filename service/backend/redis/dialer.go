// Package redis implements backend.Conn on top of go-redis. Every Dial
// creates a dedicated single-connection client, so a consumer blocked in
// BLPOP never holds a connection another consumer needs.
//
// Usage:
//
//	dialer, err := redis.New(ctx, &redis.Config{Addr: "localhost:6379"})
//	conn, err := dialer.Dial(ctx)
//	payload, err := conn.Pop(ctx, "SCRAPY_X_QUEUE.default.BACKLOG")
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/viant/xqueue/service/backend"
)

// Config holds connection parameters.
type Config struct {
	Addr     string
	DB       int
	Password string
	// Secret is an optional scy resource URL holding the password; it takes
	// precedence over Password.
	Secret string
	// SecretKey is the scy key used to decrypt Secret, e.g. blowfish://default.
	SecretKey   string
	DialTimeout time.Duration
}

// Dialer creates redis connections.
type Dialer struct {
	options *goredis.Options
}

// New creates a dialer, resolving the password secret when configured.
func New(ctx context.Context, config *Config) (*Dialer, error) {
	if config.Addr == "" {
		return nil, fmt.Errorf("redis address was empty")
	}
	password := config.Password
	if config.Secret != "" {
		var err error
		if password, err = ResolvePassword(ctx, config.Secret, config.SecretKey); err != nil {
			return nil, err
		}
	}
	dialTimeout := config.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}
	return &Dialer{options: &goredis.Options{
		Addr:                  config.Addr,
		DB:                    config.DB,
		Password:              password,
		DialTimeout:           dialTimeout,
		PoolSize:              1,
		MaxRetries:            -1,
		ContextTimeoutEnabled: true,
	}}, nil
}

// Dial opens a connection and verifies it with PING.
func (d *Dialer) Dial(ctx context.Context) (backend.Conn, error) {
	options := *d.options
	client := goredis.NewClient(&options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %v: %w", options.Addr, err)
	}
	return &Conn{client: client}, nil
}

var _ backend.Dialer = (*Dialer)(nil)
