// Package stats maintains the per-queue completion counters.
//
// Every job that leaves a backlog increments two counters: the finished
// counter, which never expires, and the rate counter. The first increment of
// the rate counter sets a RateWindow expiry, so sampling it gives an
// approximate completions-per-minute gauge. The window restarts with the
// first completion after expiry; when completions are sparser than the
// window the gauge never exceeds 1.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/backend"
)

// RateWindow is the time to live set on a fresh rate counter.
const RateWindow = 60 * time.Second

// Recorder updates completion counters through a consumer's connection.
type Recorder struct {
	conn backend.Conn
}

// NewRecorder creates a recorder.
func NewRecorder(conn backend.Conn) *Recorder {
	return &Recorder{conn: conn}
}

// RecordCompletion counts one job that left the queue.
func (r *Recorder) RecordCompletion(ctx context.Context, keys model.KeySet) error {
	if _, err := r.conn.Incr(ctx, keys.Finished); err != nil {
		return fmt.Errorf("failed to increment %v: %w", keys.Finished, err)
	}
	value, err := r.conn.Incr(ctx, keys.Rate)
	if err != nil {
		return fmt.Errorf("failed to increment %v: %w", keys.Rate, err)
	}
	if value == 1 {
		if err = r.conn.Expire(ctx, keys.Rate, RateWindow); err != nil {
			return fmt.Errorf("failed to expire %v: %w", keys.Rate, err)
		}
	}
	return nil
}
