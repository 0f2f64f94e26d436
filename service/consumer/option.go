package consumer

import (
	"log/slog"

	"github.com/viant/xqueue/metrics"
)

// Reporter receives the fatal error of a loop.
type Reporter func(err *FatalError)

// Option customises a Loop.
type Option func(*Loop)

// WithLogger sets the loop logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loop) {
		l.metrics = m
	}
}

// WithReporter sets the fatal error reporter.
func WithReporter(reporter Reporter) Option {
	return func(l *Loop) {
		l.reporter = reporter
	}
}
