// Package backend defines the connection contract between consumer loops and
// the shared store holding backlogs and counters.
package backend

import (
	"context"
	"errors"
	"time"
)

// Vendor represents the name of a backend vendor
type Vendor string

const (
	// VendorRedis selects the go-redis backend.
	VendorRedis Vendor = "redis"
	// VendorMemory selects the in-process backend.
	VendorMemory Vendor = "memory"
)

// ErrClosed is returned by operations on a closed connection.
var ErrClosed = errors.New("backend: connection closed")

// Conn is a single backend connection. Every consumer loop owns its own Conn
// so that a blocked Pop never stalls another worker.
type Conn interface {
	// Pop removes and returns the head of the list at key, blocking without a
	// timeout until an element is available or ctx is done.
	Pop(ctx context.Context, key string) ([]byte, error)

	// Push appends payload to the tail of the list at key.
	Push(ctx context.Context, key string, payload []byte) error

	// Incr atomically increments the counter at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets a time to live on key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Counter returns the counter value at key, or 0 when the key is absent.
	Counter(ctx context.Context, key string) (int64, error)

	// Len returns the length of the list at key.
	Len(ctx context.Context, key string) (int64, error)

	// Close releases the connection.
	Close() error
}

// Dialer opens backend connections.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context) (Conn, error)

// Dial calls f.
func (f DialerFunc) Dial(ctx context.Context) (Conn, error) { return f(ctx) }
