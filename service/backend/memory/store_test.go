package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/xqueue/internal/clock"
	"github.com/viant/xqueue/service/backend"
)

func TestConn_PushPop(t *testing.T) {
	ctx := context.Background()
	store := New()
	conn, err := store.Dial(ctx)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.NoError(t, conn.Push(ctx, "list", []byte(fmt.Sprintf("m%d", i))))
	}
	size, err := conn.Len(ctx, "list")
	assert.NoError(t, err)
	assert.EqualValues(t, 3, size)

	for i := 0; i < 3; i++ {
		payload, err := conn.Pop(ctx, "list")
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("m%d", i), string(payload))
	}
	size, _ = conn.Len(ctx, "list")
	assert.EqualValues(t, 0, size)
}

func TestConn_PopBlocksUntilPush(t *testing.T) {
	ctx := context.Background()
	store := New()
	consumer, _ := store.Dial(ctx)
	producer, _ := store.Dial(ctx)

	received := make(chan string, 1)
	go func() {
		payload, err := consumer.Pop(ctx, "list")
		if err == nil {
			received <- string(payload)
		}
	}()

	select {
	case <-received:
		t.Fatal("pop returned before push")
	case <-time.After(20 * time.Millisecond):
	}

	assert.NoError(t, producer.Push(ctx, "list", []byte("hello")))
	select {
	case payload := <-received:
		assert.Equal(t, "hello", payload)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up")
	}
}

func TestConn_PopExactlyOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := New()
	producer, _ := store.Dial(ctx)

	const workers, messages = 4, 100
	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	wg.Add(messages)
	for i := 0; i < workers; i++ {
		conn, _ := store.Dial(ctx)
		go func() {
			for {
				payload, err := conn.Pop(ctx, "list")
				if err != nil {
					return
				}
				mu.Lock()
				seen[string(payload)]++
				mu.Unlock()
				wg.Done()
			}
		}()
	}
	for i := 0; i < messages; i++ {
		assert.NoError(t, producer.Push(ctx, "list", []byte(fmt.Sprintf("m%d", i))))
	}
	wg.Wait()
	assert.Len(t, seen, messages)
	for key, count := range seen {
		assert.Equal(t, 1, count, key)
	}
}

func TestConn_PopCancelled(t *testing.T) {
	store := New()
	conn, _ := store.Dial(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := conn.Pop(ctx, "list")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_Fail(t *testing.T) {
	ctx := context.Background()
	store := New()
	conn, _ := store.Dial(ctx)
	broken := errors.New("connection reset")

	errs := make(chan error, 1)
	go func() {
		_, err := conn.Pop(ctx, "list")
		errs <- err
	}()
	time.Sleep(10 * time.Millisecond)
	store.Fail(broken)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, broken)
	case <-time.After(time.Second):
		t.Fatal("waiting pop was not woken by Fail")
	}
	_, err := conn.Incr(ctx, "counter")
	assert.ErrorIs(t, err, broken)
}

func TestStore_FailDial(t *testing.T) {
	store := New()
	refused := errors.New("connection refused")
	store.FailDial(refused)
	conn, err := store.Dial(context.Background())
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, refused)
	assert.Equal(t, 1, store.Dials())
}

func TestConn_Closed(t *testing.T) {
	ctx := context.Background()
	store := New()
	conn, _ := store.Dial(ctx)
	assert.NoError(t, conn.Close())
	_, err := conn.Pop(ctx, "list")
	assert.ErrorIs(t, err, backend.ErrClosed)
	assert.ErrorIs(t, conn.Push(ctx, "list", nil), backend.ErrClosed)
}

func TestConn_CounterExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return now }
	defer func() { clock.NowFunc = time.Now }()

	ctx := context.Background()
	store := New()
	conn, _ := store.Dial(ctx)

	value, err := conn.Incr(ctx, "rpm")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, value)
	assert.NoError(t, conn.Expire(ctx, "rpm", time.Minute))
	assert.Equal(t, time.Minute, store.TTL("rpm"))

	value, _ = conn.Incr(ctx, "rpm")
	assert.EqualValues(t, 2, value)

	now = now.Add(59 * time.Second)
	value, _ = conn.Counter(ctx, "rpm")
	assert.EqualValues(t, 2, value)

	now = now.Add(time.Second)
	value, _ = conn.Counter(ctx, "rpm")
	assert.EqualValues(t, 0, value)

	value, _ = conn.Incr(ctx, "rpm")
	assert.EqualValues(t, 1, value)
	assert.Equal(t, time.Duration(0), store.TTL("rpm"))
}

func TestConn_ExpireMissingKey(t *testing.T) {
	ctx := context.Background()
	conn, _ := New().Dial(ctx)
	assert.NoError(t, conn.Expire(ctx, "missing", time.Minute))
	value, err := conn.Counter(ctx, "missing")
	assert.NoError(t, err)
	assert.EqualValues(t, 0, value)
}
