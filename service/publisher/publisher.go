// Package publisher appends jobs to queue backlogs.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/backend"
)

// Publisher pushes encoded jobs onto backlog lists.
type Publisher struct {
	conn backend.Conn
}

// Publish encodes job as {"spider": ..., "args": {...}} and appends it to the
// tail of keys.Backlog.
func (p *Publisher) Publish(ctx context.Context, keys model.KeySet, job *model.Job) error {
	if job == nil || strings.TrimSpace(job.ID) == "" {
		return fmt.Errorf("job id was empty")
	}
	if job.Args == nil {
		job = model.NewJob(job.ID, nil)
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %v: %w", job.ID, err)
	}
	if err = p.conn.Push(ctx, keys.Backlog, payload); err != nil {
		return fmt.Errorf("failed to push job %v to %v: %w", job.ID, keys.Backlog, err)
	}
	return nil
}

// New creates a publisher writing through conn.
func New(conn backend.Conn) *Publisher {
	return &Publisher{conn: conn}
}
