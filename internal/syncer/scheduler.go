package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// SyncRunner is the subset of the orchestrator the scheduler drives.
type SyncRunner interface {
	ReindexAll(ctx context.Context) (*Result, error)
	SyncIncremental(ctx context.Context, since *time.Time) (*Result, error)
	CleanupOrphans(ctx context.Context) (*CleanupResult, error)
	OptimizeIndices(ctx context.Context) error
}

// Scheduler triggers the periodic sync passes. Each pass runs on its own
// ticker; overlap is resolved by the orchestrator's run lock, so a tick
// that fires while another pass is active simply skips.
type Scheduler struct {
	runner SyncRunner
	cfg    SchedulerConfig
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler over the given runner.
func NewScheduler(runner SyncRunner, cfg SchedulerConfig, logger *slog.Logger) *Scheduler {
	cfg.ApplyDefaults()
	return &Scheduler{
		runner: runner,
		cfg:    cfg,
		logger: logger.With("component", "scheduler"),
	}
}

// Start launches the periodic sync loops. Disabled schedules (interval 0)
// are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	s.spawn(runCtx, "incremental sync", s.cfg.IncrementalInterval, func(ctx context.Context) error {
		_, err := s.runner.SyncIncremental(ctx, nil)
		return err
	})
	s.spawn(runCtx, "full reindex", s.cfg.FullInterval, func(ctx context.Context) error {
		_, err := s.runner.ReindexAll(ctx)
		return err
	})
	s.spawn(runCtx, "orphan cleanup", s.cfg.CleanupInterval, func(ctx context.Context) error {
		_, err := s.runner.CleanupOrphans(ctx)
		return err
	})
	s.spawn(runCtx, "index optimization", s.cfg.OptimizeInterval, s.runner.OptimizeIndices)

	s.logger.Info("scheduler started",
		"incremental", s.cfg.IncrementalInterval,
		"full", s.cfg.FullInterval,
		"cleanup", s.cfg.CleanupInterval,
		"optimize", s.cfg.OptimizeInterval)
	return nil
}

// Stop halts all loops, waiting for an in-progress pass.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) spawn(ctx context.Context, name string, interval time.Duration, run func(context.Context) error) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runPass(ctx, name, run)
			}
		}
	}()
}

// runPass executes one scheduled pass, containing panics so a bad pass
// never takes down the other loops.
func (s *Scheduler) runPass(ctx context.Context, name string, run func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled pass panicked", "pass", name, "panic", r)
		}
	}()

	start := time.Now()
	err := run(ctx)
	switch {
	case err == nil:
		s.logger.Debug("scheduled pass completed", "pass", name, "duration", time.Since(start))
	case errors.Is(err, ErrSyncInProgress):
		s.logger.Debug("scheduled pass skipped, sync already running", "pass", name)
	default:
		s.logger.Error("scheduled pass failed", "pass", name, "error", err)
	}
}
