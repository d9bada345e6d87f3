package indexer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryQueueBounds(t *testing.T) {
	q := newRetryQueue(2)

	assert.True(t, q.push(&retryItem{ID: "1"}))
	assert.True(t, q.push(&retryItem{ID: "2"}))
	assert.False(t, q.push(&retryItem{ID: "3"}), "full queue rejects")
	assert.Equal(t, 2, q.len())

	taken := q.take(5)
	assert.Len(t, taken, 2)
	assert.Equal(t, "1", taken[0].ID, "fifo order")
	assert.Equal(t, 0, q.len())
}

func TestRetryQueueStatus(t *testing.T) {
	svc := newDisabledService(t)
	assert.Equal(t, 0, svc.RetryQueueStatus().Pending)
	assert.Nil(t, svc.RetryQueueStatus().OldestItem)

	enqueued := time.Now().Add(-time.Minute)
	svc.queue.push(&retryItem{ID: "1", EnqueuedAt: enqueued})

	st := svc.RetryQueueStatus()
	assert.Equal(t, 1, st.Pending)
	require.NotNil(t, st.OldestItem)
	assert.Equal(t, enqueued, *st.OldestItem)
}

func TestFlushRetriesSuccessfully(t *testing.T) {
	rt := &scriptTransport{status: 503, body: `{}`}
	svc := newTestService(t, rt, Config{})

	svc.Index(context.Background(), "tasks", "3", map[string]string{"title": "t"})
	require.Equal(t, 1, svc.RetryQueueStatus().Pending)

	// Cluster recovers before the next flush.
	rt.status = 200
	rt.body = `{"result":"updated"}`

	w := NewRetryWorker(svc, testLogger())
	w.Flush(context.Background())

	assert.Equal(t, 0, svc.RetryQueueStatus().Pending)
}

func TestFlushRequeuesOnFailure(t *testing.T) {
	rt := &scriptTransport{status: 503, body: `{}`}
	svc := newTestService(t, rt, Config{})

	svc.queue.push(&retryItem{Entity: "tasks", ID: "3", Document: json.RawMessage(`{}`)})

	w := NewRetryWorker(svc, testLogger())
	w.Flush(context.Background())

	require.Equal(t, 1, svc.RetryQueueStatus().Pending)
	item := svc.queue.take(1)[0]
	assert.Equal(t, 1, item.Attempts)
	assert.False(t, item.LastAttempt.IsZero())
}

func TestFlushDropsAfterMaxAttempts(t *testing.T) {
	rt := &scriptTransport{status: 503, body: `{}`}
	svc := newTestService(t, rt, Config{MaxRetryAttempts: 5})

	svc.queue.push(&retryItem{Entity: "tasks", ID: "3", Document: json.RawMessage(`{}`), Attempts: 5})

	w := NewRetryWorker(svc, testLogger())
	w.Flush(context.Background())

	assert.Equal(t, 0, svc.RetryQueueStatus().Pending, "exhausted items are dropped, not retried forever")
	assert.Empty(t, rt.requests, "dropped items never hit the network")
}

func TestFlushEmptyQueueIsNoop(t *testing.T) {
	rt := &scriptTransport{status: 200, body: `{}`}
	svc := newTestService(t, rt, Config{})

	NewRetryWorker(svc, testLogger()).Flush(context.Background())
	assert.Empty(t, rt.requests)
}

func TestRetryWorkerStartStop(t *testing.T) {
	svc := newDisabledService(t)
	w := NewRetryWorker(svc, testLogger())

	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()), "double start is a no-op")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))
	require.NoError(t, w.Stop(ctx), "double stop is a no-op")
}
