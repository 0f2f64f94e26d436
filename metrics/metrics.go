// Package metrics exposes prometheus collectors for the consumer pool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "xqueue"

// Outcome label values.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeUnknown   = "unknown"
)

// Metrics holds the collectors updated by consumer loops. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	received  *prometheus.CounterVec
	malformed *prometheus.CounterVec
	jobs      *prometheus.CounterVec
	workers   *prometheus.GaugeVec
}

// New creates collectors registered on a dedicated registry.
func New() *Metrics {
	ret := &Metrics{
		registry: prometheus.NewRegistry(),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_received_total",
			Help:      "Payloads popped from a backlog.",
		}, []string{"queue"}),
		malformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_malformed_total",
			Help:      "Payloads skipped because they could not be decoded.",
		}, []string{"queue"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_dispatched_total",
			Help:      "Dispatched jobs by outcome.",
		}, []string{"queue", "outcome"}),
		workers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Consumer loops currently connected.",
		}, []string{"queue"}),
	}
	ret.registry.MustRegister(ret.received, ret.malformed, ret.jobs, ret.workers)
	return ret
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Received counts a popped payload.
func (m *Metrics) Received(queue string) {
	if m == nil {
		return
	}
	m.received.WithLabelValues(queue).Inc()
}

// Malformed counts an undecodable payload.
func (m *Metrics) Malformed(queue string) {
	if m == nil {
		return
	}
	m.malformed.WithLabelValues(queue).Inc()
}

// Dispatched counts a dispatched job.
func (m *Metrics) Dispatched(queue, outcome string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(queue, outcome).Inc()
}

// WorkerUp counts a connected consumer loop.
func (m *Metrics) WorkerUp(queue string) {
	if m == nil {
		return
	}
	m.workers.WithLabelValues(queue).Inc()
}

// WorkerDown uncounts a consumer loop.
func (m *Metrics) WorkerDown(queue string) {
	if m == nil {
		return
	}
	m.workers.WithLabelValues(queue).Dec()
}
