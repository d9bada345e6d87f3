// Package search manages the connection to the search cluster. The client
// is created lazily on first use and shared by all callers; the index is a
// derived cache, so callers must degrade gracefully when it is unavailable.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
)

var (
	// ErrDisabled is returned when the search feature is turned off.
	// Callers treat it as "no index", not as a failure.
	ErrDisabled = errors.New("search index disabled")
	// ErrConnectionFailed is returned when the client cannot be created.
	ErrConnectionFailed = errors.New("search connection failed")
)

// Manager owns the lazily created search client.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu            sync.Mutex
	client        *elasticsearch.Client
	connectErr    error
	loggedConnect bool
}

// NewManager creates a connection manager. No connection is attempted
// until the first Client call.
func NewManager(cfg Config, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger.With("component", "search"),
	}
}

// Client returns the shared client, connecting on first use.
// Returns ErrDisabled when the feature is off.
func (m *Manager) Client() (*elasticsearch.Client, error) {
	if !m.cfg.Enabled {
		return nil, ErrDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}
	if m.connectErr != nil {
		return nil, m.connectErr
	}

	client, err := m.connect()
	if err != nil {
		m.connectErr = fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		return nil, m.connectErr
	}

	m.client = client
	if !m.loggedConnect {
		m.logger.Info("search client connected",
			"addresses", m.cfg.Addresses,
			"cloud", m.cfg.CloudID != "",
			"index_prefix", m.cfg.IndexPrefix,
			"index_suffix", m.cfg.IndexSuffix)
		m.loggedConnect = true
	}
	return m.client, nil
}

// OptionalClient returns the client or nil. It never returns an error;
// non-critical callers use it so index unavailability cannot block them.
func (m *Manager) OptionalClient() *elasticsearch.Client {
	client, err := m.Client()
	if err != nil {
		return nil
	}
	return client
}

// Enabled reports whether the search feature is turned on.
func (m *Manager) Enabled() bool {
	return m.cfg.Enabled
}

// IndexName returns the index name for an entity type:
// {prefix}-{entity}-{suffix}.
func (m *Manager) IndexName(entity string) string {
	return fmt.Sprintf("%s-%s-%s", m.cfg.IndexPrefix, entity, m.cfg.IndexSuffix)
}

// Reset discards the cached client and any cached connection failure,
// so the next Client call reconnects from scratch.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = nil
	m.connectErr = nil
}

// Close releases the client and its idle connections.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client != nil {
		if t, ok := m.client.Transport.(interface{ CloseIdleConnections() }); ok {
			t.CloseIdleConnections()
		}
		m.client = nil
		m.logger.Info("search client closed")
	}
	m.connectErr = nil
	return nil
}

func (m *Manager) connect() (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		MaxRetries:    m.cfg.MaxRetries,
		RetryOnStatus: []int{429, 502, 503, 504},
	}
	if m.cfg.CloudID != "" {
		esCfg.CloudID = m.cfg.CloudID
		esCfg.APIKey = m.cfg.APIKey
	} else {
		esCfg.Addresses = m.cfg.Addresses
		esCfg.Username = m.cfg.Username
		esCfg.Password = m.cfg.Password
	}
	if m.cfg.Transport != nil {
		esCfg.Transport = m.cfg.Transport
	} else {
		esCfg.Transport = &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: m.cfg.RequestTimeout,
		}
	}
	return elasticsearch.NewClient(esCfg)
}
