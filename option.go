package xqueue

import (
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/xqueue/metrics"
	"github.com/viant/xqueue/model/types"
	"github.com/viant/xqueue/service/backend"
	"github.com/viant/xqueue/service/executor"
	"github.com/viant/xqueue/tracing"
)

// Option customises a Service.
type Option func(s *Service)

// WithConfig sets the configuration; it is copied, later changes have no effect.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithJobs registers jobs by name.
func WithJobs(jobs ...types.Job) Option {
	return func(s *Service) {
		s.jobs = append(s.jobs, jobs...)
	}
}

// WithBuiltinJobs registers the nop, printer and exec jobs.
func WithBuiltinJobs() Option {
	return func(s *Service) {
		s.builtin = true
	}
}

// WithExecutor sets a custom job executor.
func WithExecutor(executor executor.Service) Option {
	return func(s *Service) {
		s.executor = executor
	}
}

// WithExecutorOptions lets the caller supply options passed to executor.New.
func WithExecutorOptions(opts ...executor.Option) Option {
	return func(s *Service) {
		s.executorOptions = append(s.executorOptions, opts...)
	}
}

// WithDialer sets the backend dialer, replacing the redis one built from config.
func WithDialer(dialer backend.Dialer) Option {
	return func(s *Service) {
		s.dialer = dialer
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithExitFunc replaces the function terminating the process after a fatal
// consumer error.
func WithExitFunc(fn func(code int)) Option {
	return func(s *Service) {
		s.exitFunc = fn
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
