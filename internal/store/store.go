// Package store defines the row-access contract between the relational
// system of record and the search synchronization engine. The relational
// store is the sole source of truth; index documents are derived state.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("row not found")

// Source is the paged row-access contract shared by every entity type.
type Source[T any] interface {
	// Count returns the total number of rows.
	Count(ctx context.Context) (int, error)
	// Page returns rows ordered by primary key.
	Page(ctx context.Context, offset, limit int) ([]T, error)
	// Get returns a single row by primary key, or ErrNotFound.
	Get(ctx context.Context, id int64) (*T, error)
	// IDs returns the full set of primary keys, used for orphan diffing.
	IDs(ctx context.Context) ([]int64, error)
}

// DeltaSource extends Source for tables that carry a last-modified column
// and therefore participate in incremental sync.
type DeltaSource[T any] interface {
	Source[T]
	// PageSince returns rows with updated_at >= since, ordered by primary key.
	PageSince(ctx context.Context, since time.Time, offset, limit int) ([]T, error)
}

// Lookups provides the enrichment tables as id->value maps. Each method
// issues exactly one query; callers hash-join in memory during a sync run.
type Lookups interface {
	DepartmentNames(ctx context.Context) (map[int64]string, error)
	CategoryNames(ctx context.Context) (map[int64]string, error)
	OrganizationNames(ctx context.Context) (map[int64]string, error)
	UserNames(ctx context.Context) (map[int64]string, error)
	ContactNames(ctx context.Context) (map[int64]string, error)
	EventTitles(ctx context.Context) (map[int64]string, error)

	// AttendeeCounts returns attended head counts keyed by event id.
	AttendeeCounts(ctx context.Context) (map[int64]int, error)
	// InviteeCounts returns invitation counts keyed by event id.
	InviteeCounts(ctx context.Context) (map[int64]int, error)
	// ContactCounts returns contact counts keyed by organization id.
	ContactCounts(ctx context.Context) (map[int64]int, error)
}

// Store aggregates the per-entity sources and the enrichment lookups.
type Store interface {
	Events() DeltaSource[EventRow]
	Tasks() DeltaSource[TaskRow]
	Contacts() DeltaSource[ContactRow]
	Organizations() DeltaSource[OrganizationRow]
	Leads() DeltaSource[LeadRow]
	Agreements() DeltaSource[AgreementRow]
	Activities() DeltaSource[ActivityRow]
	Interactions() DeltaSource[InteractionRow]
	Updates() DeltaSource[UpdateRow]

	// These tables have no reliable last-modified column and are only
	// refreshed by full reindex.
	Attendees() Source[AttendeeRow]
	Invitees() Source[InviteeRow]
	Departments() Source[DepartmentRow]
	ArchivedEvents() Source[ArchivedEventRow]

	Lookups() Lookups

	Close() error
}
