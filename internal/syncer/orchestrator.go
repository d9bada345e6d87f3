// Package syncer keeps the search index consistent with the relational
// store: full reindex, incremental delta sync, single-document refresh and
// orphan cleanup, all serialized through one process-wide running flag.
package syncer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer/documents"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/search"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// Orchestrator is the only component that walks the relational store at
// scale. All sync modes are mutually exclusive through its state; ordinary
// single-document indexing calls interleave freely since document writes
// are idempotent upserts.
type Orchestrator struct {
	store   store.Store
	indexer *indexer.Service
	search  *search.Manager
	cfg     Config
	logger  *slog.Logger
	state   state

	enrMu      sync.Mutex
	enrCache   *enrichment
	enrCacheAt time.Time
}

// New creates a sync orchestrator.
func New(st store.Store, idx *indexer.Service, mgr *search.Manager, cfg Config, logger *slog.Logger) *Orchestrator {
	cfg.ApplyDefaults()
	o := &Orchestrator{
		store:   st,
		indexer: idx,
		search:  mgr,
		cfg:     cfg,
		logger:  logger.With("component", "syncer"),
	}
	o.state.maxStatusErrors = cfg.MaxStatusErrors
	return o
}

// Status returns the current sync state snapshot.
func (o *Orchestrator) Status() Status {
	return o.state.snapshot()
}

// entitySync binds one entity type to its sync operations. A nil since
// function means the table has no last-modified column and is excluded
// from incremental sync; such entities only refresh on full reindex.
type entitySync struct {
	name  string
	full  func(ctx context.Context, e *enrichment) (int, []SyncError)
	since func(ctx context.Context, e *enrichment, since time.Time) (int, []SyncError)
	ids   func(ctx context.Context) ([]int64, error)
}

func (o *Orchestrator) entities() []entitySync {
	return []entitySync{
		entityFor(o, documents.EntityEvents, o.store.Events(), (*enrichment).eventDoc),
		entityFor(o, documents.EntityTasks, o.store.Tasks(), (*enrichment).taskDoc),
		entityFor(o, documents.EntityContacts, o.store.Contacts(), (*enrichment).contactDoc),
		entityFor(o, documents.EntityOrganizations, o.store.Organizations(), (*enrichment).organizationDoc),
		entityFor(o, documents.EntityLeads, o.store.Leads(), (*enrichment).leadDoc),
		entityFor(o, documents.EntityAgreements, o.store.Agreements(), (*enrichment).agreementDoc),
		staticEntityFor(o, documents.EntityAttendees, o.store.Attendees(), (*enrichment).attendeeDoc),
		staticEntityFor(o, documents.EntityInvitees, o.store.Invitees(), (*enrichment).inviteeDoc),
		entityFor(o, documents.EntityActivities, o.store.Activities(), (*enrichment).activityDoc),
		entityFor(o, documents.EntityInteractions, o.store.Interactions(), (*enrichment).interactionDoc),
		staticEntityFor(o, documents.EntityDepartments, o.store.Departments(), (*enrichment).departmentDoc),
		staticEntityFor(o, documents.EntityArchivedEvents, o.store.ArchivedEvents(), (*enrichment).archivedEventDoc),
		entityFor(o, documents.EntityUpdates, o.store.Updates(), (*enrichment).updateDoc),
	}
}

// entityFor wires a delta-capable source into an entitySync.
func entityFor[T any](o *Orchestrator, entity string, src store.DeltaSource[T], build func(*enrichment, T) (string, any)) entitySync {
	return entitySync{
		name: entity,
		full: func(ctx context.Context, e *enrichment) (int, []SyncError) {
			return syncPaged(ctx, o, entity, src, e, build)
		},
		since: func(ctx context.Context, e *enrichment, since time.Time) (int, []SyncError) {
			return syncSince(ctx, o, entity, src, e, build, since)
		},
		ids: src.IDs,
	}
}

// staticEntityFor wires a source without a last-modified column.
func staticEntityFor[T any](o *Orchestrator, entity string, src store.Source[T], build func(*enrichment, T) (string, any)) entitySync {
	return entitySync{
		name: entity,
		full: func(ctx context.Context, e *enrichment) (int, []SyncError) {
			return syncPaged(ctx, o, entity, src, e, build)
		},
		ids: src.IDs,
	}
}

// ReindexAll rebuilds every entity type from the relational store. Errors
// are isolated per entity type: one entity failing entirely does not stop
// the remaining ones.
func (o *Orchestrator) ReindexAll(ctx context.Context) (*Result, error) {
	if !o.search.Enabled() {
		return nil, search.ErrDisabled
	}
	if err := o.state.beginRun(); err != nil {
		return nil, err
	}
	defer o.state.endRun()

	runID := uuid.NewString()
	start := time.Now()
	o.logger.Info("full reindex started", "run_id", runID)

	enr, err := o.loadEnrichment(ctx)
	if err != nil {
		o.logger.Error("full reindex aborted, enrichment load failed", "run_id", runID, "error", err)
		return nil, err
	}

	result := &Result{}
	entities := o.entities()
	for i, ent := range entities {
		o.state.setCurrent(ent.name)
		n, errs := ent.full(ctx, enr)
		result.DocumentsIndexed += n
		result.Errors = append(result.Errors, errs...)
		o.state.recordIndexed(n)
		o.state.recordErrors(errs)
		o.state.setProgress((i + 1) * 100 / len(entities))
		o.logger.Info("entity reindexed",
			"run_id", runID, "entity", ent.name, "documents", n, "errors", len(errs))
	}

	result.Duration = time.Since(start)
	result.Success = len(result.Errors) == 0
	o.state.markFullSync(time.Now())
	o.logger.Info("full reindex finished",
		"run_id", runID,
		"documents", result.DocumentsIndexed,
		"errors", len(result.Errors),
		"duration", result.Duration)
	return result, nil
}

// ReindexEntity rebuilds a single entity type.
func (o *Orchestrator) ReindexEntity(ctx context.Context, entity string) (*Result, error) {
	if !o.search.Enabled() {
		return nil, search.ErrDisabled
	}

	var target *entitySync
	for _, ent := range o.entities() {
		if ent.name == entity {
			e := ent
			target = &e
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}

	if err := o.state.beginRun(); err != nil {
		return nil, err
	}
	defer o.state.endRun()

	start := time.Now()
	o.state.setCurrent(entity)

	enr, err := o.loadEnrichment(ctx)
	if err != nil {
		return nil, err
	}

	n, errs := target.full(ctx, enr)
	o.state.recordIndexed(n)
	o.state.recordErrors(errs)

	return &Result{
		Success:          len(errs) == 0,
		DocumentsIndexed: n,
		Errors:           errs,
		Duration:         time.Since(start),
		Entity:           entity,
	}, nil
}

// syncPaged walks a source in fixed-size pages, bulk-indexing each page.
// The enrichment maps were built once before the loop; nothing inside the
// loop queries lookup tables.
func syncPaged[T any](ctx context.Context, o *Orchestrator, entity string, src store.Source[T], enr *enrichment, build func(*enrichment, T) (string, any)) (int, []SyncError) {
	var indexed int
	var errs []SyncError

	for offset := 0; ; offset += o.cfg.PageSize {
		rows, err := src.Page(ctx, offset, o.cfg.PageSize)
		if err != nil {
			errs = append(errs, entityError(entity, "", err))
			return indexed, errs
		}
		if len(rows) == 0 {
			break
		}

		ops := make([]indexer.BulkOperation, 0, len(rows))
		for _, row := range rows {
			id, doc := build(enr, row)
			ops = append(ops, indexer.BulkOperation{
				Action:   indexer.ActionIndex,
				Entity:   entity,
				ID:       id,
				Document: doc,
			})
		}

		res, err := o.indexer.BulkIndex(ctx, ops)
		if err != nil {
			errs = append(errs, entityError(entity, "", err))
			return indexed, errs
		}
		indexed += res.Indexed + res.Updated
		for _, be := range res.Errors {
			errs = append(errs, SyncError{
				Entity:    entity,
				ID:        be.ID,
				Error:     fmt.Sprintf("%s: %s", be.ErrorType, be.Reason),
				Timestamp: time.Now(),
			})
		}

		if len(rows) < o.cfg.PageSize {
			break
		}
	}
	return indexed, errs
}

// OptimizeIndices force-merges all entity indices. Scheduled off-peak;
// failures are operator-visible but harmless.
func (o *Orchestrator) OptimizeIndices(ctx context.Context) error {
	client, err := o.search.Client()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(documents.EntityTypes()))
	for _, entity := range documents.EntityTypes() {
		names = append(names, o.search.IndexName(entity))
	}

	res, err := client.Indices.Forcemerge(
		client.Indices.Forcemerge.WithIndex(names...),
		client.Indices.Forcemerge.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("forcemerge: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("forcemerge: status %d: %s", res.StatusCode, msg)
	}
	o.logger.Info("index optimization completed", "indices", len(names))
	return nil
}

func entityError(entity, id string, err error) SyncError {
	return SyncError{
		Entity:    entity,
		ID:        id,
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
}
