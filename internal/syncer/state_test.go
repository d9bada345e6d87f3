package syncer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateBeginEndRun(t *testing.T) {
	var s state

	require.NoError(t, s.beginRun())
	assert.ErrorIs(t, s.beginRun(), ErrSyncInProgress)

	s.endRun()
	require.NoError(t, s.beginRun(), "idle state accepts a new run")
	s.endRun()
}

func TestStateSnapshotCapsErrors(t *testing.T) {
	s := state{maxStatusErrors: 10}
	var errs []SyncError
	for i := 0; i < 25; i++ {
		errs = append(errs, SyncError{Entity: "tasks", ID: fmt.Sprint(i), Error: "boom", Timestamp: time.Now()})
	}
	s.recordErrors(errs)

	st := s.snapshot()
	assert.Len(t, st.Errors, 10)
	assert.Equal(t, 15, st.MoreErrors)
	assert.Equal(t, "0", st.Errors[0].ID, "the first errors are kept, the tail is summarized")
}

func TestStateSnapshotNoOverflow(t *testing.T) {
	s := state{maxStatusErrors: 10}
	s.recordErrors([]SyncError{{Entity: "tasks", ID: "1", Error: "boom"}})

	st := s.snapshot()
	assert.Len(t, st.Errors, 1)
	assert.Zero(t, st.MoreErrors)
}

func TestStateBeginRunResetsRunScopedFields(t *testing.T) {
	var s state
	require.NoError(t, s.beginRun())
	s.setCurrent("tasks")
	s.setProgress(40)
	s.recordErrors([]SyncError{{Entity: "tasks", Error: "boom"}})
	s.endRun()

	require.NoError(t, s.beginRun())
	defer s.endRun()

	st := s.snapshot()
	assert.True(t, st.InProgress)
	assert.Empty(t, st.CurrentEntity)
	assert.Zero(t, st.Progress)
	assert.Empty(t, st.Errors, "errors are per run, not accumulated forever")
}

func TestStateTimestamps(t *testing.T) {
	var s state

	st := s.snapshot()
	assert.Nil(t, st.LastSyncAt)
	assert.Nil(t, st.LastFullSyncAt)

	now := time.Now()
	s.markIncrementalSync(now)
	st = s.snapshot()
	require.NotNil(t, st.LastSyncAt)
	assert.Nil(t, st.LastFullSyncAt)

	full := now.Add(time.Minute)
	s.markFullSync(full)
	st = s.snapshot()
	require.NotNil(t, st.LastFullSyncAt)
	assert.Equal(t, full, *st.LastSyncAt, "a full sync advances both watermarks")
}
