package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/config"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewManager_AccessorsBeforeInit(t *testing.T) {
	cfg := &config.Config{}
	mgr := NewManager(cfg, Options{}, testLogger())

	assert.Nil(t, mgr.Orchestrator())
	assert.Nil(t, mgr.Indexer())
	assert.Nil(t, mgr.Search())
}

func TestManager_ShutdownUninitialized(t *testing.T) {
	mgr := NewManager(&config.Config{}, Options{}, testLogger())

	// Nothing was initialized; shutdown must not panic.
	mgr.Shutdown(context.Background())
}

func TestManager_StartWithoutBackgroundTasks(t *testing.T) {
	mgr := NewManager(&config.Config{}, Options{}, testLogger())

	require.NoError(t, mgr.Start(context.Background()))
	mgr.Shutdown(context.Background())
}

func TestManager_StartStopRetryWorker(t *testing.T) {
	logger := testLogger()
	searchMgr := search.NewManager(search.Config{Enabled: false}, logger)
	svc := indexer.NewService(searchMgr, indexer.Config{}, logger)

	mgr := NewManager(&config.Config{}, Options{RunRetryQueue: true}, logger)
	mgr.searchMgr = searchMgr
	mgr.indexService = svc
	mgr.retryWorker = indexer.NewRetryWorker(svc, logger)

	require.NoError(t, mgr.Start(context.Background()))
	mgr.Shutdown(context.Background())
}
