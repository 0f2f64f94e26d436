package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/xqueue/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeysCmd(t *testing.T) {
	t.Setenv("X_QUEUE_NAME", "NS")
	t.Setenv("X_QUEUE_WORKERS_COUNT", "default:1,priority:2")
	t.Setenv("X_LOG_LEVEL", "error")
	out, err := execute(t, "keys", "--backend", "memory")
	require.NoError(t, err)
	actual := map[string]model.KeySet{}
	require.NoError(t, json.Unmarshal([]byte(out), &actual))
	assert.Equal(t, map[string]model.KeySet{
		"default":  model.DeriveKeys("NS", "default"),
		"priority": model.DeriveKeys("NS", "priority"),
	}, actual)
}

func TestStatsCmd_Memory(t *testing.T) {
	t.Setenv("X_QUEUE_WORKERS_COUNT", "default:1")
	t.Setenv("X_LOG_LEVEL", "error")
	out, err := execute(t, "stats", "--backend", "memory")
	require.NoError(t, err)
	assert.JSONEq(t, `{"default":{"finished":0,"perMinute":0,"pending":0}}`, out)
}

func TestEnqueueCmd(t *testing.T) {
	t.Setenv("X_LOG_LEVEL", "error")
	out, err := execute(t, "enqueue", "default", "printer", "--backend", "memory", "--args", `{"message":"hi"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "enqueued printer on default")

	_, err = execute(t, "enqueue", "default", "printer", "--backend", "memory", "--args", `[1]`)
	assert.Error(t, err)

	_, err = execute(t, "enqueue", "default")
	assert.Error(t, err)
}

func TestUnsupportedBackend(t *testing.T) {
	_, err := execute(t, "keys", "--backend", "kafka")
	assert.EqualError(t, err, "unsupported backend: kafka")
}
