package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store/storetest"
)

func TestReindexDocumentUpsert(t *testing.T) {
	now := time.Now()
	st := storetest.New()
	st.EventRows = []store.EventRow{{ID: 7, Title: "Forum", Status: "scheduled", CreatedAt: now, UpdatedAt: now}}
	es := &fakeES{}
	o := newTestOrchestrator(t, st, es, Config{})

	require.NoError(t, o.ReindexDocument(context.Background(), "events", 7))
	assert.Equal(t, []string{"ems-events-prod/7"}, es.DocWrites)
}

func TestReindexDocumentMissingRowDeletes(t *testing.T) {
	es := &fakeES{}
	o := newTestOrchestrator(t, storetest.New(), es, Config{})

	require.NoError(t, o.ReindexDocument(context.Background(), "events", 9))
	assert.Empty(t, es.DocWrites)
	assert.Equal(t, []string{"ems-events-prod/9"}, es.DocDeletes,
		"a vanished row is a deletion, not an error")
}

func TestReindexDocumentUnknownEntity(t *testing.T) {
	o := newTestOrchestrator(t, storetest.New(), &fakeES{}, Config{})
	assert.Error(t, o.ReindexDocument(context.Background(), "widgets", 1))
}

func TestReindexDocumentDisabledIsNoop(t *testing.T) {
	o := newDisabledOrchestrator(t, storetest.New())
	assert.NoError(t, o.ReindexDocument(context.Background(), "events", 1))
}

func TestReindexDocumentCachesEnrichment(t *testing.T) {
	now := time.Now()
	st := storetest.New()
	st.EventRows = []store.EventRow{{ID: 1, Title: "a", Status: "scheduled", CreatedAt: now, UpdatedAt: now}}
	o := newTestOrchestrator(t, st, &fakeES{}, Config{EnrichmentTTL: time.Minute})

	require.NoError(t, o.ReindexDocument(context.Background(), "events", 1))
	queries := st.LookupQueries
	assert.Equal(t, 9, queries)

	require.NoError(t, o.ReindexDocument(context.Background(), "events", 1))
	assert.Equal(t, queries, st.LookupQueries,
		"a burst of single-document updates reuses the cached lookups")
}

func TestReindexDocumentExpiredCacheReloads(t *testing.T) {
	now := time.Now()
	st := storetest.New()
	st.EventRows = []store.EventRow{{ID: 1, Title: "a", Status: "scheduled", CreatedAt: now, UpdatedAt: now}}
	o := newTestOrchestrator(t, st, &fakeES{}, Config{EnrichmentTTL: time.Nanosecond})

	require.NoError(t, o.ReindexDocument(context.Background(), "events", 1))
	queries := st.LookupQueries

	time.Sleep(time.Millisecond)
	require.NoError(t, o.ReindexDocument(context.Background(), "events", 1))
	assert.Greater(t, st.LookupQueries, queries)
}

func TestReindexDocumentDoesNotTakeRunLock(t *testing.T) {
	now := time.Now()
	st := storetest.New()
	st.EventRows = []store.EventRow{{ID: 1, Title: "a", Status: "scheduled", CreatedAt: now, UpdatedAt: now}}
	o := newTestOrchestrator(t, st, &fakeES{}, Config{})

	require.NoError(t, o.state.beginRun())
	defer o.state.endRun()

	assert.NoError(t, o.ReindexDocument(context.Background(), "events", 1),
		"single-document refresh stays available during background syncs")
}
