package syncer

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRunner records which passes fired.
type countingRunner struct {
	mu          sync.Mutex
	full        int
	incremental int
	cleanup     int
	optimize    int
	err         error
}

func (r *countingRunner) ReindexAll(context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.full++
	return &Result{Success: true}, r.err
}

func (r *countingRunner) SyncIncremental(context.Context, *time.Time) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incremental++
	return &Result{Success: true}, r.err
}

func (r *countingRunner) CleanupOrphans(context.Context) (*CleanupResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanup++
	return &CleanupResult{}, r.err
}

func (r *countingRunner) OptimizeIndices(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.optimize++
	return r.err
}

func (r *countingRunner) counts() (int, int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.full, r.incremental, r.cleanup, r.optimize
}

func stopScheduler(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestSchedulerRunsIncremental(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, SchedulerConfig{
		Enabled:             true,
		IncrementalInterval: 5 * time.Millisecond,
		FullInterval:        time.Hour,
		OptimizeInterval:    time.Hour,
		CleanupInterval:     time.Hour,
	}, testLogger())

	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	assert.Eventually(t, func() bool {
		_, inc, _, _ := runner.counts()
		return inc >= 2
	}, time.Second, time.Millisecond)

	full, _, cleanup, optimize := runner.counts()
	assert.Zero(t, full)
	assert.Zero(t, cleanup)
	assert.Zero(t, optimize)
}

func TestSchedulerDisabled(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, SchedulerConfig{Enabled: false}, testLogger())

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(20 * time.Millisecond)

	full, inc, cleanup, optimize := runner.counts()
	assert.Zero(t, full+inc+cleanup+optimize)
}

func TestSchedulerStopHaltsTicks(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, SchedulerConfig{
		Enabled:             true,
		IncrementalInterval: 5 * time.Millisecond,
		FullInterval:        time.Hour,
		OptimizeInterval:    time.Hour,
		CleanupInterval:     time.Hour,
	}, testLogger())

	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool {
		_, inc, _, _ := runner.counts()
		return inc >= 1
	}, time.Second, time.Millisecond)
	stopScheduler(t, s)

	_, before, _, _ := runner.counts()
	time.Sleep(30 * time.Millisecond)
	_, after, _, _ := runner.counts()
	assert.Equal(t, before, after)
}

func TestSchedulerToleratesContention(t *testing.T) {
	runner := &countingRunner{err: ErrSyncInProgress}
	s := NewScheduler(runner, SchedulerConfig{
		Enabled:             true,
		IncrementalInterval: 5 * time.Millisecond,
		FullInterval:        time.Hour,
		OptimizeInterval:    time.Hour,
		CleanupInterval:     time.Hour,
	}, testLogger())

	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	assert.Eventually(t, func() bool {
		_, inc, _, _ := runner.counts()
		return inc >= 3
	}, time.Second, time.Millisecond, "a busy orchestrator never stops the ticker")
}

func TestSchedulerContainsPanics(t *testing.T) {
	runner := &panickingRunner{}
	s := NewScheduler(runner, SchedulerConfig{
		Enabled:             true,
		IncrementalInterval: 5 * time.Millisecond,
		FullInterval:        time.Hour,
		OptimizeInterval:    time.Hour,
		CleanupInterval:     time.Hour,
	}, testLogger())

	require.NoError(t, s.Start(context.Background()))
	defer stopScheduler(t, s)

	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 2
	}, time.Second, time.Millisecond, "a panicking pass must not kill the loop")
}

type panickingRunner struct {
	calls atomic.Int64
}

func (r *panickingRunner) ReindexAll(context.Context) (*Result, error) { return &Result{}, nil }
func (r *panickingRunner) SyncIncremental(context.Context, *time.Time) (*Result, error) {
	r.calls.Add(1)
	panic("boom")
}
func (r *panickingRunner) CleanupOrphans(context.Context) (*CleanupResult, error) {
	return &CleanupResult{}, nil
}
func (r *panickingRunner) OptimizeIndices(context.Context) error { return nil }
