package services

import "context"

// Shutdown stops background tasks and closes connections in reverse
// startup order. Errors are logged, not returned: shutdown always runs
// to completion.
func (m *Manager) Shutdown(ctx context.Context) {
	if m.consumer != nil {
		if err := m.consumer.Stop(ctx); err != nil {
			m.logger.Error("error stopping event consumer", "error", err)
		}
	}
	if m.scheduler != nil {
		if err := m.scheduler.Stop(ctx); err != nil {
			m.logger.Error("error stopping scheduler", "error", err)
		}
	}
	if m.retryWorker != nil {
		if err := m.retryWorker.Stop(ctx); err != nil {
			m.logger.Error("error stopping retry worker", "error", err)
		}
	}
	if m.natsConn != nil {
		m.natsConn.Close()
	}
	if m.searchMgr != nil {
		m.searchMgr.Close()
	}
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			m.logger.Error("error closing store", "error", err)
		}
	}
	m.logger.Info("services stopped")
}
