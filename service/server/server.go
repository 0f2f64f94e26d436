// Package server exposes a read-only HTTP status surface for a running
// consumer pool: liveness, prometheus metrics and per queue counters.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viant/xqueue/model"
	"github.com/viant/xqueue/service/stats"
	"github.com/viant/xqueue/service/supervisor"
)

// Config represents the listener configuration; a zero Port disables the listener.
type Config struct {
	Host      string `yaml:"host" env:"X_SERVER_LISTEN_HOST"`
	Port      int    `yaml:"port" env:"X_SERVER_LISTEN_PORT"`
	AccessLog bool   `yaml:"accessLog" env:"X_ENABLE_ACCESS_LOG"`
}

// Enabled reports whether the listener should be started.
func (c *Config) Enabled() bool {
	return c.Port > 0
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// QueueStatus describes a single queue.
type QueueStatus struct {
	Queue   string          `json:"queue"`
	Workers int             `json:"workers"`
	Keys    model.KeySet    `json:"keys"`
	Stats   *stats.Snapshot `json:"stats,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Status describes the consumer pool.
type Status struct {
	Namespace string                  `json:"namespace"`
	Queues    []*QueueStatus          `json:"queues"`
	Workers   []supervisor.WorkerInfo `json:"workers"`
}

// Source provides the pool status.
type Source interface {
	Status(ctx context.Context) (*Status, error)
}

// Server serves the status surface.
type Server struct {
	config   Config
	source   Source
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	server   *http.Server
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.config.AccessLog {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelInfo),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/queues", s.queues)
	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) queues(w http.ResponseWriter, r *http.Request) {
	status, err := s.source.Status(r.Context())
	if err != nil {
		s.logger.Error("failed to read queue status", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ListenAndServe blocks serving the status surface until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("status server listening", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writeJSON: encode failed", "error", err)
	}
}

// New creates a status server; a nil gatherer disables /metrics.
func New(config Config, source Source, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	ret := &Server{config: config, source: source, gatherer: gatherer, logger: logger}
	ret.server = &http.Server{
		Addr:              config.Addr(),
		Handler:           ret.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ret
}
