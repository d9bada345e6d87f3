package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// DocumentSyncer refreshes one document from its relational row. A row
// that no longer exists is removed from the index, so both upserts and
// deletions route through the same call.
type DocumentSyncer interface {
	ReindexDocument(ctx context.Context, entity string, id int64) error
}

// Consumer subscribes to change events and keeps single documents fresh
// in near real time. Instances share a queue group, so a horizontally
// scaled deployment processes each event once.
type Consumer struct {
	nc      *nats.Conn
	syncer  DocumentSyncer
	cfg     Config
	logger  *slog.Logger
	timeout time.Duration

	mu  sync.Mutex
	sub *nats.Subscription
}

// NewConsumer creates a change-event consumer.
func NewConsumer(nc *nats.Conn, syncer DocumentSyncer, cfg Config, logger *slog.Logger) *Consumer {
	cfg.ApplyDefaults()
	return &Consumer{
		nc:      nc,
		syncer:  syncer,
		cfg:     cfg,
		logger:  logger.With("component", "events-consumer"),
		timeout: 30 * time.Second,
	}
}

// Start subscribes to all entity change subjects.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub != nil {
		return nil
	}

	subject := c.cfg.SubjectPrefix + ".>"
	sub, err := c.nc.QueueSubscribe(subject, c.cfg.QueueGroup, func(msg *nats.Msg) {
		c.handle(msg)
	})
	if err != nil {
		return err
	}
	c.sub = sub

	c.logger.Info("change event consumer started",
		"subject", subject,
		"queue", c.cfg.QueueGroup)
	return nil
}

// Stop unsubscribes; in-flight handlers finish on their own.
func (c *Consumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub == nil {
		return nil
	}
	err := c.sub.Unsubscribe()
	c.sub = nil
	c.logger.Info("change event consumer stopped")
	return err
}

func (c *Consumer) handle(msg *nats.Msg) {
	var event ChangeEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logger.Warn("dropping malformed change event", "subject", msg.Subject, "error", err)
		return
	}
	c.Process(context.Background(), event)
}

// Process applies one change event. Errors are logged, never returned to
// the transport: change events are fire-and-forget and the index will be
// repaired by the scheduled syncs.
func (c *Consumer) Process(ctx context.Context, event ChangeEvent) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.syncer.ReindexDocument(ctx, event.Entity, event.ID); err != nil {
		c.logger.Error("change event processing failed",
			"entity", event.Entity,
			"id", event.ID,
			"action", event.Action,
			"error", err)
		return
	}
	c.logger.Debug("change event processed",
		"entity", event.Entity,
		"id", event.ID,
		"action", event.Action)
}
