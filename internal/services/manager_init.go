package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/events"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store/postgres"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/syncer"
)

// Init constructs the component graph without starting background tasks.
func (m *Manager) Init(ctx context.Context) error {
	st, err := postgres.Open(ctx, m.cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	m.store = st

	m.searchMgr = search.NewManager(m.cfg.Search, m.logger)
	m.indexService = indexer.NewService(m.searchMgr, m.cfg.Indexer, m.logger)
	m.orchestrator = syncer.New(m.store, m.indexService, m.searchMgr, m.cfg.Sync, m.logger)

	if m.searchMgr.Enabled() {
		if m.opts.WaitForSearch && !m.searchMgr.WaitUntilReady(ctx, 10, time.Second, 30*time.Second) {
			return fmt.Errorf("search cluster not ready")
		}
		if err := m.indexService.EnsureIndices(ctx); err != nil {
			// The cluster may simply not be up yet; the lazy client will
			// reconnect and missing indices auto-create on first write.
			m.logger.Warn("index bootstrap failed", "error", err)
		}
	}

	if m.opts.RunRetryQueue {
		m.retryWorker = indexer.NewRetryWorker(m.indexService, m.logger)
	}
	if m.opts.RunScheduler {
		m.scheduler = syncer.NewScheduler(m.orchestrator, m.cfg.Scheduler, m.logger)
	}
	if m.opts.RunConsumer && m.cfg.Events.Enabled {
		nc, err := natsConnectFunc(m.cfg.Events.URL)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		m.natsConn = nc
		m.consumer = events.NewConsumer(nc, m.orchestrator, m.cfg.Events, m.logger)
	}

	m.logger.Info("services initialized",
		"search_enabled", m.searchMgr.Enabled(),
		"scheduler", m.scheduler != nil,
		"consumer", m.consumer != nil)
	return nil
}

// Start launches the configured background tasks.
func (m *Manager) Start(ctx context.Context) error {
	if m.retryWorker != nil {
		if err := m.retryWorker.Start(ctx); err != nil {
			return err
		}
	}
	if m.scheduler != nil {
		if err := m.scheduler.Start(ctx); err != nil {
			return err
		}
	}
	if m.consumer != nil {
		if err := m.consumer.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}
