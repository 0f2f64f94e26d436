package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("xqueue", "0.0.1", fname))

	ctx, span := StartSpan(context.Background(), "job.execute crawl", "CONSUMER")
	span.WithAttributes(map[string]string{"job.name": "crawl"})
	current, ok := SpanFromContext(ctx)
	assert.True(t, ok)
	assert.NotNil(t, current)
	EndSpan(span, errors.New("failed"))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "job.execute crawl")
}

func TestSpanFromContext_Empty(t *testing.T) {
	span, ok := SpanFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, span)
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(nil)
	EndSpan(span, nil)
}
