package xqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/viant/xqueue/internal/logging"
	"github.com/viant/xqueue/metrics"
	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/model/types"
	"github.com/viant/xqueue/service/action"
	"github.com/viant/xqueue/service/backend"
	"github.com/viant/xqueue/service/backend/redis"
	"github.com/viant/xqueue/service/dispatcher"
	"github.com/viant/xqueue/service/executor"
	"github.com/viant/xqueue/service/publisher"
	"github.com/viant/xqueue/service/registry"
	"github.com/viant/xqueue/service/server"
	"github.com/viant/xqueue/service/stats"
	"github.com/viant/xqueue/service/supervisor"
	"github.com/viant/xqueue/tracing"
)

// ExitCodeFatal is the process exit status after a fatal consumer error.
const ExitCodeFatal = 255

// ErrAlreadyStarted is returned when Start or Run is called twice.
var ErrAlreadyStarted = errors.New("consumer pool already started")

// Service represents a consumer pool.
type Service struct {
	config          *Config
	logger          *slog.Logger
	plan            model.Plan
	keys            *model.KeyTable
	jobs            []types.Job
	builtin         bool
	registry        *registry.Registry
	executor        executor.Service
	executorOptions []executor.Option
	dispatcher      *dispatcher.Service
	metrics         *metrics.Metrics
	dialer          backend.Dialer
	supervisor      *supervisor.Service
	exitFunc        func(code int)
	terminated      chan error
	started         atomic.Bool
}

// Config returns a copy of the effective configuration.
func (s *Service) Config() *Config {
	return s.config.Clone()
}

// Plan returns a copy of the concurrency plan.
func (s *Service) Plan() model.Plan {
	ret, _ := model.NewPlan(s.plan)
	return ret
}

// Keys returns the key table.
func (s *Service) Keys() *model.KeyTable {
	return s.keys
}

// Registry returns the job registry.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// Metrics returns the metrics collectors.
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// Start launches the consumer loops and returns immediately. The first fatal
// consumer error is logged and the exit function is called with
// ExitCodeFatal, without any cleanup, until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	s.logger.Info("starting consumer pool",
		slog.String("namespace", s.config.Queue.Name),
		slog.Int("workers", s.plan.Workers()),
		slog.Any("jobs", s.registry.Names()),
	)
	if err := s.supervisor.Start(ctx, s.plan); err != nil {
		return err
	}
	go s.watch(ctx)
	return nil
}

// watch terminates the process on the first fatal consumer error.
func (s *Service) watch(ctx context.Context) {
	select {
	case fatal := <-s.supervisor.Fatal():
		s.terminate(fatal, "consumer failed, terminating",
			slog.String("queue", fatal.Queue),
			slog.String("worker", fatal.Worker),
			slog.String("stage", fatal.Stage.String()),
			slog.String("error", fatal.Err.Error()),
		)
	case <-ctx.Done():
	}
}

// terminate logs err and calls the exit function; Run returns err when the
// exit function returns.
func (s *Service) terminate(err error, msg string, attrs ...slog.Attr) {
	logging.Critical(s.logger, msg, attrs...)
	s.exitFunc(ExitCodeFatal)
	select {
	case s.terminated <- err:
	default:
	}
}

// Run starts the pool and the status server, then blocks until a consumer
// reports a fatal error or ctx is done. A fatal error is logged and the exit
// function is called with ExitCodeFatal without any cleanup; Run returns the
// error only when the exit function returns.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	serverErr := make(chan error, 1)
	var srv *server.Server
	if s.config.Server.Enabled() {
		srv = server.New(s.config.Server, s, s.metrics.Registry(), s.logger)
		go func() { serverErr <- srv.ListenAndServe() }()
	}
	select {
	case err := <-s.terminated:
		return err
	case err := <-serverErr:
		if err == nil {
			err = errors.New("status server stopped")
		}
		s.terminate(err, "status server failed, terminating", slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}
		return nil
	}
}

// Enqueue appends a job to the backlog of the queue with the supplied suffix.
// The suffix does not need to be consumed by this pool.
func (s *Service) Enqueue(ctx context.Context, suffix, jobID string, args map[string]interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "queue.enqueue "+suffix, "PRODUCER")
	span.WithAttributes(map[string]string{"queue": suffix, "job.name": jobID})
	defer func() { tracing.EndSpan(span, err) }()

	if err = (model.Plan{suffix: 1}).Validate(); err != nil {
		return err
	}
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	keys := model.DeriveKeys(s.config.Queue.Name, suffix)
	return publisher.New(conn).Publish(ctx, keys, model.NewJob(jobID, args))
}

// Stats samples the counters of every planned queue.
func (s *Service) Stats(ctx context.Context) (map[string]*stats.Snapshot, error) {
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	reader := stats.NewReader(conn)
	ret := make(map[string]*stats.Snapshot, len(s.plan))
	for _, suffix := range s.plan.Suffixes() {
		keys, _ := s.keys.Lookup(suffix)
		if ret[suffix], err = reader.Read(ctx, keys); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Status returns the pool status served on /queues. A queue whose counters
// cannot be read reports the failure in its Error field.
func (s *Service) Status(ctx context.Context) (*server.Status, error) {
	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	reader := stats.NewReader(conn)
	ret := &server.Status{Namespace: s.keys.Namespace(), Workers: s.supervisor.Workers()}
	for _, suffix := range s.plan.Suffixes() {
		keys, _ := s.keys.Lookup(suffix)
		queue := &server.QueueStatus{Queue: suffix, Workers: s.plan[suffix], Keys: keys}
		if queue.Stats, err = reader.Read(ctx, keys); err != nil {
			queue.Error = err.Error()
		}
		ret.Queues = append(ret.Queues, queue)
	}
	return ret, nil
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	s.config = s.config.Clone()
	s.config.Init()
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.logger == nil {
		s.logger = logging.New(os.Stderr, logging.ParseLevel(s.config.Log.Level), s.config.Log.Format)
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.ServiceName, "", s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	var err error
	if s.plan, err = model.NewPlan(s.config.Queue.Workers); err != nil {
		return err
	}
	s.keys = model.NewKeyTable(s.config.Queue.Name, s.plan)

	jobs := s.jobs
	if s.builtin {
		jobs = append(action.Builtin(s.logger), jobs...)
	}
	if s.registry, err = registry.New(jobs...); err != nil {
		return err
	}
	if err = s.registry.Validate(); err != nil {
		return err
	}
	if s.executor == nil {
		s.executor = executor.New(s.executorOptions...)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.dialer == nil {
		if s.dialer, err = redis.New(context.Background(), s.config.Redis.backend()); err != nil {
			return err
		}
	}
	if s.exitFunc == nil {
		s.exitFunc = os.Exit
	}
	s.terminated = make(chan error, 1)
	s.dispatcher = dispatcher.New(s.registry, s.executor, s.logger, s.metrics)
	s.supervisor = supervisor.New(s.keys, s.dialer, s.dispatcher, s.logger, s.metrics)
	return nil
}

// New creates a consumer pool. The configuration, plan, key table and job
// registry are fixed from here on.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
