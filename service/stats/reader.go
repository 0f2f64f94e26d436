package stats

import (
	"context"
	"fmt"

	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/backend"
)

// Snapshot represents sampled queue counters.
type Snapshot struct {
	Finished  int64 `json:"finished"`
	PerMinute int64 `json:"perMinute"`
	Pending   int64 `json:"pending"`
}

// Reader samples queue counters.
type Reader struct {
	conn backend.Conn
}

// NewReader creates a reader.
func NewReader(conn backend.Conn) *Reader {
	return &Reader{conn: conn}
}

// Read samples the counters and backlog length of a queue.
func (r *Reader) Read(ctx context.Context, keys model.KeySet) (*Snapshot, error) {
	var err error
	ret := &Snapshot{}
	if ret.Finished, err = r.conn.Counter(ctx, keys.Finished); err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", keys.Finished, err)
	}
	if ret.PerMinute, err = r.conn.Counter(ctx, keys.Rate); err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", keys.Rate, err)
	}
	if ret.Pending, err = r.conn.Len(ctx, keys.Backlog); err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", keys.Backlog, err)
	}
	return ret, nil
}
