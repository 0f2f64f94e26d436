package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.Received("default")
	m.Received("default")
	m.Malformed("default")
	m.Dispatched("default", OutcomeSucceeded)
	m.Dispatched("default", OutcomeUnknown)
	m.WorkerUp("default")
	m.WorkerUp("default")
	m.WorkerDown("default")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.received.WithLabelValues("default")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.malformed.WithLabelValues("default")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobs.WithLabelValues("default", OutcomeSucceeded)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.jobs.WithLabelValues("default", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workers.WithLabelValues("default")))

	count, err := testutil.GatherAndCount(m.Registry(), "xqueue_jobs_dispatched_total")
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.Received("default")
	m.Malformed("default")
	m.Dispatched("default", OutcomeFailed)
	m.WorkerUp("default")
	m.WorkerDown("default")
	assert.Nil(t, m.Registry())
}
