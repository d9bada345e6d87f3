package syncer

import (
	"errors"
	"sync"
	"time"
)

// ErrSyncInProgress is returned when a sync is requested while another is
// running. It is an expected contention signal, not a fault: callers log
// it and try again on their next trigger.
var ErrSyncInProgress = errors.New("sync already in progress")

// SyncError records one failed document or entity type within a run.
type SyncError struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Result is the return contract of every sync operation.
type Result struct {
	Success          bool          `json:"success"`
	DocumentsIndexed int           `json:"documentsIndexed"`
	DocumentsDeleted int           `json:"documentsDeleted"`
	Errors           []SyncError   `json:"errors"`
	Duration         time.Duration `json:"duration"`
	Entity           string        `json:"entity,omitempty"`
}

// Status is the operational snapshot polled by dashboards and the CLI.
type Status struct {
	InProgress       bool        `json:"inProgress"`
	CurrentEntity    string      `json:"currentEntity,omitempty"`
	Progress         int         `json:"progress"`
	LastSyncAt       *time.Time  `json:"lastSyncAt"`
	LastFullSyncAt   *time.Time  `json:"lastFullSyncAt"`
	DocumentsIndexed int64       `json:"documentsIndexed"`
	DocumentsDeleted int64       `json:"documentsDeleted"`
	Errors           []SyncError `json:"errors"`
	MoreErrors       int         `json:"moreErrors"`
}

// state is the process-wide sync state. Mutated only by the orchestrator;
// the begin-run transition is the single mutual-exclusion point for all
// sync modes. Not safe across multiple process instances.
type state struct {
	mu sync.Mutex

	running       bool
	currentEntity string
	progress      int

	lastFullSync        time.Time
	lastIncrementalSync time.Time
	totalIndexed        int64
	totalDeleted        int64
	errors              []SyncError

	maxStatusErrors int
}

// beginRun transitions Idle -> Running, or fails with ErrSyncInProgress
// without mutating anything.
func (s *state) beginRun() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrSyncInProgress
	}
	s.running = true
	s.currentEntity = ""
	s.progress = 0
	s.errors = nil
	return nil
}

// endRun transitions Running -> Idle. Called in a deferred block so the
// flag resets on both success and failure paths.
func (s *state) endRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.currentEntity = ""
	s.progress = 0
}

func (s *state) setCurrent(entity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentEntity = entity
}

func (s *state) setProgress(pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = pct
}

func (s *state) recordIndexed(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalIndexed += int64(n)
}

func (s *state) recordDeleted(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalDeleted += int64(n)
}

func (s *state) recordErrors(errs []SyncError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, errs...)
}

func (s *state) markFullSync(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFullSync = t
	s.lastIncrementalSync = t
}

func (s *state) markIncrementalSync(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastIncrementalSync = t
}

func (s *state) lastIncremental() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastIncrementalSync
}

// snapshot returns the dashboard view, with the error list capped and the
// overflow reported as a count.
func (s *state) snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		InProgress:       s.running,
		CurrentEntity:    s.currentEntity,
		Progress:         s.progress,
		DocumentsIndexed: s.totalIndexed,
		DocumentsDeleted: s.totalDeleted,
	}
	if !s.lastIncrementalSync.IsZero() {
		t := s.lastIncrementalSync
		st.LastSyncAt = &t
	}
	if !s.lastFullSync.IsZero() {
		t := s.lastFullSync
		st.LastFullSyncAt = &t
	}

	limit := s.maxStatusErrors
	if limit <= 0 {
		limit = 10
	}
	if len(s.errors) > limit {
		st.Errors = append([]SyncError(nil), s.errors[:limit]...)
		st.MoreErrors = len(s.errors) - limit
	} else {
		st.Errors = append([]SyncError(nil), s.errors...)
	}
	return st
}
