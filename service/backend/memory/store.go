// Package memory implements an in-process backend.Conn. Lists and counters
// live in a single Store shared by every connection dialed from it, which
// mirrors a Redis server shared by many clients.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/viant/xqueue/internal/clock"
	"github.com/viant/xqueue/service/backend"
)

type counter struct {
	value     int64
	expiresAt time.Time
}

// Store holds lists and counters.
type Store struct {
	mu       sync.Mutex
	lists    map[string][][]byte
	counters map[string]*counter
	notify   chan struct{}
	err      error
	keyErrs  map[string]error
	dialErr  error
	dials    int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		lists:    make(map[string][][]byte),
		counters: make(map[string]*counter),
		keyErrs:  make(map[string]error),
		notify:   make(chan struct{}),
	}
}

// Dial opens a connection to the store.
func (s *Store) Dial(ctx context.Context) (backend.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dials++
	if s.dialErr != nil {
		return nil, s.dialErr
	}
	return &Conn{store: s}, nil
}

// Dials returns the number of Dial calls so far.
func (s *Store) Dials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

// FailDial makes every subsequent Dial return err.
func (s *Store) FailDial(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialErr = err
}

// Fail makes every subsequent operation, including Pop calls already
// waiting, return err.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.broadcast()
}

// FailKey makes every subsequent operation on key return err.
func (s *Store) FailKey(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyErrs[key] = err
	s.broadcast()
}

// TTL returns the remaining time to live of a counter, or 0 when the key is
// absent or has no expiry.
func (s *Store) TTL(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.counter(key)
	if c == nil || c.expiresAt.IsZero() {
		return 0
	}
	return c.expiresAt.Sub(clock.Now())
}

// broadcast wakes every waiting Pop; callers hold mu.
func (s *Store) broadcast() {
	close(s.notify)
	s.notify = make(chan struct{})
}

// counter returns the live counter at key, dropping it once expired; callers hold mu.
func (s *Store) counter(key string) *counter {
	c, ok := s.counters[key]
	if !ok {
		return nil
	}
	if clock.Expired(c.expiresAt) {
		delete(s.counters, key)
		return nil
	}
	return c
}
