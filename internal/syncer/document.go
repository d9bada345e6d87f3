package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer/documents"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// ReindexDocument refreshes a single document after a row mutation. A row
// that no longer exists is treated as a deletion and removed from the
// index. Unlike the bulk sync modes it does not take the run lock, so it
// stays responsive while a background sync is in flight.
func (o *Orchestrator) ReindexDocument(ctx context.Context, entity string, id int64) error {
	if !o.search.Enabled() {
		return nil
	}

	enr, err := o.cachedEnrichment(ctx)
	if err != nil {
		return fmt.Errorf("reindex %s/%d: %w", entity, id, err)
	}

	switch entity {
	case documents.EntityEvents:
		return reindexOne(ctx, o, entity, o.store.Events(), enr, (*enrichment).eventDoc, id)
	case documents.EntityTasks:
		return reindexOne(ctx, o, entity, o.store.Tasks(), enr, (*enrichment).taskDoc, id)
	case documents.EntityContacts:
		return reindexOne(ctx, o, entity, o.store.Contacts(), enr, (*enrichment).contactDoc, id)
	case documents.EntityOrganizations:
		return reindexOne(ctx, o, entity, o.store.Organizations(), enr, (*enrichment).organizationDoc, id)
	case documents.EntityLeads:
		return reindexOne(ctx, o, entity, o.store.Leads(), enr, (*enrichment).leadDoc, id)
	case documents.EntityAgreements:
		return reindexOne(ctx, o, entity, o.store.Agreements(), enr, (*enrichment).agreementDoc, id)
	case documents.EntityAttendees:
		return reindexOne(ctx, o, entity, o.store.Attendees(), enr, (*enrichment).attendeeDoc, id)
	case documents.EntityInvitees:
		return reindexOne(ctx, o, entity, o.store.Invitees(), enr, (*enrichment).inviteeDoc, id)
	case documents.EntityActivities:
		return reindexOne(ctx, o, entity, o.store.Activities(), enr, (*enrichment).activityDoc, id)
	case documents.EntityInteractions:
		return reindexOne(ctx, o, entity, o.store.Interactions(), enr, (*enrichment).interactionDoc, id)
	case documents.EntityDepartments:
		return reindexOne(ctx, o, entity, o.store.Departments(), enr, (*enrichment).departmentDoc, id)
	case documents.EntityArchivedEvents:
		return reindexOne(ctx, o, entity, o.store.ArchivedEvents(), enr, (*enrichment).archivedEventDoc, id)
	case documents.EntityUpdates:
		return reindexOne(ctx, o, entity, o.store.Updates(), enr, (*enrichment).updateDoc, id)
	default:
		return fmt.Errorf("reindex: unknown entity type %q", entity)
	}
}

func reindexOne[T any](ctx context.Context, o *Orchestrator, entity string, src store.Source[T], enr *enrichment, build func(*enrichment, T) (string, any), id int64) error {
	row, err := src.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		o.indexer.DeleteDocument(ctx, entity, documents.DocID(id))
		o.logger.Debug("document removed", "entity", entity, "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reindex %s/%d: %w", entity, id, err)
	}

	docID, doc := build(enr, *row)
	if _, err := o.indexer.Index(ctx, entity, docID, doc); err != nil {
		return fmt.Errorf("reindex %s/%d: %w", entity, id, err)
	}
	return nil
}

// cachedEnrichment reuses the last loaded lookup maps for a short window
// so bursts of single-document updates do not hammer the lookup tables.
func (o *Orchestrator) cachedEnrichment(ctx context.Context) (*enrichment, error) {
	o.enrMu.Lock()
	defer o.enrMu.Unlock()

	if o.enrCache != nil && time.Since(o.enrCacheAt) < o.cfg.EnrichmentTTL {
		return o.enrCache, nil
	}
	enr, err := o.loadEnrichment(ctx)
	if err != nil {
		return nil, err
	}
	o.enrCache = enr
	o.enrCacheAt = time.Now()
	return enr, nil
}
