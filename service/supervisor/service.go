// Package supervisor launches the consumer loops described by a plan.
//
// Loops are started once and never joined or restarted. The first fatal
// error reported by any loop is published on the Fatal channel; the caller
// decides how to terminate the process.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/xqueue/internal/idgen"
	"github.com/viant/xqueue/metrics"
	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/backend"
	"github.com/viant/xqueue/service/consumer"
	"github.com/viant/xqueue/service/dispatcher"
)

// WorkerInfo describes a running loop.
type WorkerInfo struct {
	ID    string         `json:"id"`
	Queue string         `json:"queue"`
	State consumer.State `json:"state"`
}

// Service supervises consumer loops.
type Service struct {
	keys       *model.KeyTable
	dialer     backend.Dialer
	dispatcher *dispatcher.Service
	logger     *slog.Logger
	metrics    *metrics.Metrics
	fatal      chan *consumer.FatalError
	mux        sync.RWMutex
	loops      []*consumer.Loop
}

// Fatal returns the channel receiving the first fatal error.
func (s *Service) Fatal() <-chan *consumer.FatalError {
	return s.fatal
}

// Workers returns a snapshot of the started loops.
func (s *Service) Workers() []WorkerInfo {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]WorkerInfo, 0, len(s.loops))
	for _, loop := range s.loops {
		ret = append(ret, WorkerInfo{ID: loop.ID(), Queue: loop.Queue(), State: loop.State()})
	}
	return ret
}

// Start launches plan[suffix] loops for every suffix, in suffix order, and
// returns without waiting for them.
func (s *Service) Start(ctx context.Context, plan model.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	var loops []*consumer.Loop
	for _, suffix := range plan.Suffixes() {
		keys, ok := s.keys.Lookup(suffix)
		if !ok {
			return fmt.Errorf("no keys derived for queue %v", suffix)
		}
		for i := 0; i < plan[suffix]; i++ {
			loops = append(loops, consumer.New(idgen.WorkerID(suffix, i), suffix, keys, s.dialer, s.dispatcher,
				consumer.WithLogger(s.logger),
				consumer.WithMetrics(s.metrics),
				consumer.WithReporter(s.report),
			))
		}
		s.logger.Info("starting consumers", slog.String("queue", suffix), slog.Int("workers", plan[suffix]), slog.String("backlog", keys.Backlog))
	}
	s.mux.Lock()
	s.loops = append(s.loops, loops...)
	s.mux.Unlock()
	for _, loop := range loops {
		go loop.Run(ctx)
	}
	return nil
}

// report keeps the first fatal error and drops the rest.
func (s *Service) report(err *consumer.FatalError) {
	select {
	case s.fatal <- err:
	default:
		s.logger.Debug("dropped subsequent fatal error", slog.String("error", err.Error()))
	}
}

// New creates a supervisor.
func New(keys *model.KeyTable, dialer backend.Dialer, dispatcher *dispatcher.Service, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		keys:       keys,
		dialer:     dialer,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
		fatal:      make(chan *consumer.FatalError, 1),
	}
}
