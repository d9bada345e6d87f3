// Package services wires the search synchronization components together
// and owns their startup and shutdown order.
package services

import (
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/config"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/events"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/syncer"
)

// Options selects which background tasks the manager runs. The CLI turns
// everything off for one-shot admin commands.
type Options struct {
	RunScheduler  bool
	RunRetryQueue bool
	RunConsumer   bool

	// WaitForSearch blocks startup until the cluster responds, instead of
	// letting the lazy client connect on first use.
	WaitForSearch bool
}

// natsConnectFunc allows test injection.
var natsConnectFunc = nats.Connect

// Manager owns the lifecycle of every component.
type Manager struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger

	store        store.Store
	searchMgr    *search.Manager
	indexService *indexer.Service
	retryWorker  *indexer.RetryWorker
	orchestrator *syncer.Orchestrator
	scheduler    *syncer.Scheduler
	natsConn     *nats.Conn
	consumer     *events.Consumer
}

// NewManager creates an uninitialized manager.
func NewManager(cfg *config.Config, opts Options, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		opts:   opts,
		logger: logger.With("component", "services"),
	}
}

// Orchestrator returns the sync orchestrator. Valid after Init.
func (m *Manager) Orchestrator() *syncer.Orchestrator {
	return m.orchestrator
}

// Indexer returns the indexing service. Valid after Init.
func (m *Manager) Indexer() *indexer.Service {
	return m.indexService
}

// Search returns the index connection manager. Valid after Init.
func (m *Manager) Search() *search.Manager {
	return m.searchMgr
}
