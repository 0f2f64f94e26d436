package consumer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/viant/xqueue/internal/logging"
	"github.com/viant/xqueue/metrics"
	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/backend"
	"github.com/viant/xqueue/service/decoder"
	"github.com/viant/xqueue/service/dispatcher"
	"github.com/viant/xqueue/service/stats"
)

// Loop consumes one backlog list.
type Loop struct {
	id         string
	queue      string
	keys       model.KeySet
	dialer     backend.Dialer
	dispatcher *dispatcher.Service
	logger     *slog.Logger
	metrics    *metrics.Metrics
	reporter   Reporter
	state      atomic.Int32
}

// ID returns the worker identifier.
func (l *Loop) ID() string { return l.id }

// Queue returns the queue suffix the loop consumes.
func (l *Loop) Queue() string { return l.queue }

// State returns the current state; safe for concurrent use.
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(state State) {
	l.state.Store(int32(state))
}

// Run executes the loop until a fatal error occurs or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.setState(StateTerminated)
	l.setState(StateConnecting)
	conn, err := l.dialer.Dial(ctx)
	if err != nil {
		l.fail(ctx, StateConnecting, err)
		return
	}
	defer conn.Close()
	l.metrics.WorkerUp(l.queue)
	defer l.metrics.WorkerDown(l.queue)

	recorder := stats.NewRecorder(conn)
	l.logger.Debug("consumer started", slog.String("queue", l.queue), slog.String("worker", l.id), slog.String("backlog", l.keys.Backlog))
	for {
		l.setState(StateBlocked)
		payload, err := conn.Pop(ctx, l.keys.Backlog)
		if err != nil {
			l.fail(ctx, StateBlocked, err)
			return
		}
		l.metrics.Received(l.queue)

		l.setState(StateDecoding)
		result := decoder.Decode(payload)
		if !result.OK() {
			l.metrics.Malformed(l.queue)
			logging.Critical(l.logger, "failed to decode payload",
				slog.String("queue", l.queue),
				slog.String("worker", l.id),
				slog.String("error", result.Err.Error()),
				slog.String("payload", string(payload)),
			)
			l.setState(StateIdle)
			continue
		}
		if result.ArgsReplaced {
			l.logger.Warn("job args were not an object, using empty args",
				slog.String("queue", l.queue),
				slog.String("job", result.Job.ID),
				slog.String("args", string(result.RawArgs)),
			)
		}

		l.setState(StateDispatching)
		if outcome := l.dispatcher.Dispatch(ctx, l.queue, result.Job); outcome == dispatcher.OutcomeUnknown {
			l.setState(StateIdle)
			continue
		}

		l.setState(StateRecording)
		if err := recorder.RecordCompletion(ctx, l.keys); err != nil {
			l.fail(ctx, StateRecording, err)
			return
		}
		l.setState(StateIdle)
	}
}

// fail reports a fatal error unless the loop is shutting down.
func (l *Loop) fail(ctx context.Context, stage State, err error) {
	if ctx.Err() != nil {
		l.logger.Debug("consumer stopped", slog.String("queue", l.queue), slog.String("worker", l.id))
		return
	}
	fatal := &FatalError{Queue: l.queue, Worker: l.id, Stage: stage, Err: err}
	if l.reporter == nil {
		logging.Critical(l.logger, fatal.Error())
		return
	}
	l.reporter(fatal)
}

// New creates a loop consuming keys.Backlog for queue.
func New(id, queue string, keys model.KeySet, dialer backend.Dialer, dispatcher *dispatcher.Service, opts ...Option) *Loop {
	ret := &Loop{
		id:         id,
		queue:      queue,
		keys:       keys,
		dialer:     dialer,
		dispatcher: dispatcher,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
