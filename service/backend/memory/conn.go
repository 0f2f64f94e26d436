package memory

import (
	"context"
	"time"

	"github.com/viant/xqueue/internal/clock"
	"github.com/viant/xqueue/service/backend"
)

// Conn is a connection to a Store.
type Conn struct {
	store  *Store
	closed bool
}

// check returns the error an operation on key should fail with; callers hold store.mu.
func (c *Conn) check(key string) error {
	if c.closed {
		return backend.ErrClosed
	}
	if c.store.err != nil {
		return c.store.err
	}
	return c.store.keyErrs[key]
}

// Pop removes the head of the list at key, waiting until one is pushed.
func (c *Conn) Pop(ctx context.Context, key string) ([]byte, error) {
	s := c.store
	for {
		s.mu.Lock()
		if err := c.check(key); err != nil {
			s.mu.Unlock()
			return nil, err
		}
		if list := s.lists[key]; len(list) > 0 {
			head := list[0]
			if len(list) == 1 {
				delete(s.lists, key)
			} else {
				s.lists[key] = list[1:]
			}
			s.mu.Unlock()
			return head, nil
		}
		wait := s.notify
		s.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Push appends payload to the list at key.
func (c *Conn) Push(ctx context.Context, key string, payload []byte) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := c.check(key); err != nil {
		return err
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	s.lists[key] = append(s.lists[key], data)
	s.broadcast()
	return nil
}

// Incr increments the counter at key.
func (c *Conn) Incr(ctx context.Context, key string) (int64, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := c.check(key); err != nil {
		return 0, err
	}
	aCounter := s.counter(key)
	if aCounter == nil {
		aCounter = &counter{}
		s.counters[key] = aCounter
	}
	aCounter.value++
	return aCounter.value, nil
}

// Expire sets a time to live on the counter at key; absent keys are ignored.
func (c *Conn) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := c.check(key); err != nil {
		return err
	}
	if aCounter := s.counter(key); aCounter != nil {
		aCounter.expiresAt = clock.Now().Add(ttl)
	}
	return nil
}

// Counter returns the counter value at key.
func (c *Conn) Counter(ctx context.Context, key string) (int64, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := c.check(key); err != nil {
		return 0, err
	}
	if aCounter := s.counter(key); aCounter != nil {
		return aCounter.value, nil
	}
	return 0, nil
}

// Len returns the length of the list at key.
func (c *Conn) Len(ctx context.Context, key string) (int64, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := c.check(key); err != nil {
		return 0, err
	}
	return int64(len(s.lists[key])), nil
}

// Close marks the connection closed.
func (c *Conn) Close() error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.closed = true
	c.store.broadcast()
	return nil
}

// ensure Conn implements backend.Conn interface
var _ backend.Conn = (*Conn)(nil)

var _ backend.Dialer = (*Store)(nil)
