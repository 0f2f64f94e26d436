// Package dispatcher resolves a decoded job against the registry and runs it.
//
// Dispatch never returns an error: an unknown job identifier, a failing job
// and a panicking job are all logged at CRITICAL level and reported only
// through the returned Outcome. Jobs are never retried.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/viant/xqueue/internal/logging"
	"github.com/viant/xqueue/metrics"
	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/model/types"
	"github.com/viant/xqueue/service/executor"
	"github.com/viant/xqueue/service/registry"
)

// Outcome describes how a dispatched job ended.
type Outcome int

const (
	// OutcomeSucceeded means the job ran and returned nil.
	OutcomeSucceeded Outcome = iota
	// OutcomeFailed means the job returned an error or panicked.
	OutcomeFailed
	// OutcomeUnknown means no job is registered under the identifier.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return metrics.OutcomeSucceeded
	case OutcomeFailed:
		return metrics.OutcomeFailed
	case OutcomeUnknown:
		return metrics.OutcomeUnknown
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Service dispatches jobs.
type Service struct {
	registry *registry.Registry
	executor executor.Service
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a dispatcher; a nil logger falls back to slog.Default and nil
// metrics record nothing.
func New(registry *registry.Registry, executor executor.Service, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{registry: registry, executor: executor, logger: logger, metrics: m}
}

// Dispatch runs job and reports its outcome.
func (s *Service) Dispatch(ctx context.Context, queue string, job *model.Job) Outcome {
	outcome := s.dispatch(ctx, queue, job)
	s.metrics.Dispatched(queue, outcome.String())
	return outcome
}

func (s *Service) dispatch(ctx context.Context, queue string, job *model.Job) Outcome {
	handle, ok := s.registry.Lookup(job.ID)
	if !ok {
		logging.Critical(s.logger, "unknown job",
			slog.String("queue", queue),
			slog.String("job", job.ID),
			slog.String("error", types.NewUnknownJobError(job.ID).Error()),
		)
		return OutcomeUnknown
	}
	if err := s.execute(ctx, handle, job.Args); err != nil {
		if msg := err.Error(); strings.TrimSpace(msg) != "" {
			logging.Critical(s.logger, "job failed",
				slog.String("queue", queue),
				slog.String("job", job.ID),
				slog.String("error", msg),
			)
		}
		return OutcomeFailed
	}
	return OutcomeSucceeded
}

func (s *Service) execute(ctx context.Context, handle types.Job, args map[string]interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %v panicked: %v\n%s", handle.Name(), r, debug.Stack())
		}
	}()
	return s.executor.Execute(ctx, handle, args)
}
