package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSyncer struct {
	mu    sync.Mutex
	calls []ChangeEvent
	err   error
}

func (r *recordingSyncer) ReindexDocument(_ context.Context, entity string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ChangeEvent{Entity: entity, ID: id})
	return r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "entities.changed.events", Subject("entities.changed", "events"))
}

func TestProcessRoutesToSyncer(t *testing.T) {
	syncer := &recordingSyncer{}
	c := NewConsumer(nil, syncer, Config{}, testLogger())

	c.Process(context.Background(), ChangeEvent{Entity: "tasks", ID: 7, Action: ActionUpserted})

	assert.Equal(t, []ChangeEvent{{Entity: "tasks", ID: 7}}, syncer.calls)
}

func TestProcessDeletionAlsoRoutesToSyncer(t *testing.T) {
	// Deletions go through the same refresh path: a missing row is
	// resolved to an index delete by the syncer itself.
	syncer := &recordingSyncer{}
	c := NewConsumer(nil, syncer, Config{}, testLogger())

	c.Process(context.Background(), ChangeEvent{Entity: "events", ID: 3, Action: ActionDeleted})

	assert.Len(t, syncer.calls, 1)
}

func TestProcessSwallowsErrors(t *testing.T) {
	syncer := &recordingSyncer{err: errors.New("search unavailable")}
	c := NewConsumer(nil, syncer, Config{}, testLogger())

	// Must not panic or propagate: change events are fire-and-forget.
	c.Process(context.Background(), ChangeEvent{Entity: "tasks", ID: 7, Action: ActionUpserted})
	assert.Len(t, syncer.calls, 1)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.NotEmpty(t, cfg.URL)
	assert.Equal(t, "entities.changed", cfg.SubjectPrefix)
	assert.Equal(t, "searchsync", cfg.QueueGroup)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Enabled: true}
	assert.Error(t, cfg.Validate())

	cfg.URL = "nats://localhost:4222"
	assert.NoError(t, cfg.Validate())

	assert.NoError(t, (&Config{Enabled: false}).Validate())
}
