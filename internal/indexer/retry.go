package indexer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// retryItem is a single-document write that failed transiently and is
// eligible for re-attempt.
type retryItem struct {
	Entity      string
	ID          string
	Document    json.RawMessage
	Attempts    int
	LastAttempt time.Time
	EnqueuedAt  time.Time
}

// retryQueue is a bounded in-memory holding area for failed writes.
// When full, new items are dropped with a logged failure; the full
// reindex will repair the index regardless.
type retryQueue struct {
	mu      sync.Mutex
	items   []*retryItem
	cap     int
	dropped int
}

func newRetryQueue(capacity int) *retryQueue {
	return &retryQueue{cap: capacity}
}

// push appends an item, reporting false when the queue is full.
func (q *retryQueue) push(item *retryItem) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.cap {
		q.dropped++
		return false
	}
	q.items = append(q.items, item)
	return true
}

// take removes and returns up to n items from the head of the queue.
func (q *retryQueue) take(n int) []*retryItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n > len(q.items) {
		n = len(q.items)
	}
	taken := q.items[:n]
	q.items = append([]*retryItem(nil), q.items[n:]...)
	return taken
}

func (q *retryQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *retryQueue) oldest() *time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0].EnqueuedAt
	return &t
}

// QueueStatus is the retry queue introspection surface for health
// dashboards.
type QueueStatus struct {
	Pending    int        `json:"pending"`
	OldestItem *time.Time `json:"oldestItem"`
}

// RetryQueueStatus reports the current retry queue state.
func (s *Service) RetryQueueStatus() QueueStatus {
	return QueueStatus{
		Pending:    s.queue.len(),
		OldestItem: s.queue.oldest(),
	}
}

// RetryWorker periodically drains the retry queue. It is a dedicated
// background task, independent of any in-flight request, so shutdown and
// testing stay deterministic.
type RetryWorker struct {
	svc    *Service
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRetryWorker creates a retry worker for the service's queue.
func NewRetryWorker(svc *Service, logger *slog.Logger) *RetryWorker {
	return &RetryWorker{
		svc:    svc,
		logger: logger.With("component", "retry-worker"),
	}
}

// Start launches the flush loop.
func (w *RetryWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(runCtx)

	w.logger.Info("retry worker started",
		"interval", w.svc.cfg.RetryFlushInterval,
		"batch", w.svc.cfg.RetryFlushBatch)
	return nil
}

// Stop halts the flush loop, waiting for an in-progress flush.
func (w *RetryWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.cancel()
	w.running = false
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("retry worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *RetryWorker) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.svc.cfg.RetryFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Flush(ctx)
		}
	}
}

// Flush retries up to one batch of queued items. Items that exhaust their
// attempts are dropped with a single error log; failures below the limit
// are re-queued with an incremented attempt count.
func (w *RetryWorker) Flush(ctx context.Context) {
	items := w.svc.queue.take(w.svc.cfg.RetryFlushBatch)
	if len(items) == 0 {
		return
	}
	w.logger.Debug("flushing retry queue", "items", len(items))

	for _, item := range items {
		if item.Attempts >= w.svc.cfg.MaxRetryAttempts {
			w.logger.Error("dropping document after max retry attempts",
				"entity", item.Entity,
				"id", item.ID,
				"attempts", item.Attempts)
			continue
		}

		_, err := w.svc.indexRaw(ctx, item.Entity, item.ID, item.Document)
		if err != nil {
			item.Attempts++
			item.LastAttempt = time.Now()
			w.svc.queue.push(item)
			w.logger.Warn("retry failed, re-queued",
				"entity", item.Entity,
				"id", item.ID,
				"attempts", item.Attempts,
				"error", err)
			continue
		}
		w.logger.Info("retry succeeded",
			"entity", item.Entity,
			"id", item.ID,
			"attempts", item.Attempts)
	}
}
