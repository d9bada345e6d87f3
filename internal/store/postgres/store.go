// Package postgres implements store.Store on PostgreSQL via database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// Store implements store.Store backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg store.Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// source is the shared paged-query implementation for a single table.
// updatedCol is empty for tables without a last-modified column.
type source[T any] struct {
	db         *sql.DB
	table      string
	columns    string
	updatedCol string
	scan       func(rows *sql.Rows) (T, error)
}

func (s *source[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}

func (s *source[T]) Page(ctx context.Context, offset, limit int) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id LIMIT $1 OFFSET $2", s.columns, s.table)
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", s.table, err)
	}
	return s.collect(rows)
}

func (s *source[T]) PageSince(ctx context.Context, since time.Time, offset, limit int) ([]T, error) {
	if s.updatedCol == "" {
		return nil, fmt.Errorf("table %s has no last-modified column", s.table)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s >= $1 ORDER BY id LIMIT $2 OFFSET $3",
		s.columns, s.table, s.updatedCol)
	rows, err := s.db.QueryContext(ctx, query, since, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page since %s: %w", s.table, err)
	}
	return s.collect(rows)
}

func (s *source[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.columns, s.table)
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.table, err)
	}
	items, err := s.collect(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, store.ErrNotFound
	}
	return &items[0], nil
}

func (s *source[T]) IDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("ids %s: %w", s.table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *source[T]) collect(rows *sql.Rows) ([]T, error) {
	defer rows.Close()
	var items []T
	for rows.Next() {
		item, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) Events() store.DeltaSource[store.EventRow] {
	return &source[store.EventRow]{
		db: s.db, table: "events", updatedCol: "updated_at",
		columns: "id, title, title_ar, description, location, status, category_id, department_id, start_date, end_date, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.EventRow, err error) {
			err = rows.Scan(&r.ID, &r.Title, &r.TitleAr, &r.Description, &r.Location, &r.Status,
				&r.CategoryID, &r.DepartmentID, &r.StartDate, &r.EndDate, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Tasks() store.DeltaSource[store.TaskRow] {
	return &source[store.TaskRow]{
		db: s.db, table: "tasks", updatedCol: "updated_at",
		columns: "id, title, description, status, priority, due_date, completed_at, assignee_id, department_id, event_id, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.TaskRow, err error) {
			err = rows.Scan(&r.ID, &r.Title, &r.Description, &r.Status, &r.Priority,
				&r.DueDate, &r.CompletedAt, &r.AssigneeID, &r.DepartmentID, &r.EventID, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Contacts() store.DeltaSource[store.ContactRow] {
	return &source[store.ContactRow]{
		db: s.db, table: "contacts", updatedCol: "updated_at",
		columns: "id, first_name, last_name, email, phone, job_title, organization_id, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.ContactRow, err error) {
			err = rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email, &r.Phone,
				&r.JobTitle, &r.OrganizationID, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Organizations() store.DeltaSource[store.OrganizationRow] {
	return &source[store.OrganizationRow]{
		db: s.db, table: "organizations", updatedCol: "updated_at",
		columns: "id, name, name_ar, sector, country, website, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.OrganizationRow, err error) {
			err = rows.Scan(&r.ID, &r.Name, &r.NameAr, &r.Sector, &r.Country, &r.Website, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Leads() store.DeltaSource[store.LeadRow] {
	return &source[store.LeadRow]{
		db: s.db, table: "leads", updatedCol: "updated_at",
		columns: "id, name, status, source, organization_id, owner_id, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.LeadRow, err error) {
			err = rows.Scan(&r.ID, &r.Name, &r.Status, &r.Source, &r.OrganizationID, &r.OwnerID, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Agreements() store.DeltaSource[store.AgreementRow] {
	return &source[store.AgreementRow]{
		db: s.db, table: "agreements", updatedCol: "updated_at",
		columns: "id, title, type, status, organization_id, signed_date, expiry_date, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.AgreementRow, err error) {
			err = rows.Scan(&r.ID, &r.Title, &r.Type, &r.Status, &r.OrganizationID,
				&r.SignedDate, &r.ExpiryDate, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Activities() store.DeltaSource[store.ActivityRow] {
	return &source[store.ActivityRow]{
		db: s.db, table: "activities", updatedCol: "updated_at",
		columns: "id, type, subject, notes, contact_id, event_id, created_by, occurred_at, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.ActivityRow, err error) {
			err = rows.Scan(&r.ID, &r.Type, &r.Subject, &r.Notes, &r.ContactID,
				&r.EventID, &r.CreatedBy, &r.OccurredAt, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Interactions() store.DeltaSource[store.InteractionRow] {
	return &source[store.InteractionRow]{
		db: s.db, table: "interactions", updatedCol: "updated_at",
		columns: "id, contact_id, channel, summary, occurred_at, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.InteractionRow, err error) {
			err = rows.Scan(&r.ID, &r.ContactID, &r.Channel, &r.Summary, &r.OccurredAt, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Updates() store.DeltaSource[store.UpdateRow] {
	return &source[store.UpdateRow]{
		db: s.db, table: "updates", updatedCol: "updated_at",
		columns: "id, title, body, author_id, published_at, created_at, updated_at",
		scan: func(rows *sql.Rows) (r store.UpdateRow, err error) {
			err = rows.Scan(&r.ID, &r.Title, &r.Body, &r.AuthorID, &r.PublishedAt, &r.CreatedAt, &r.UpdatedAt)
			return
		},
	}
}

func (s *Store) Attendees() store.Source[store.AttendeeRow] {
	return &source[store.AttendeeRow]{
		db: s.db, table: "attendees",
		columns: "id, event_id, contact_id, status, checked_in_at, created_at",
		scan: func(rows *sql.Rows) (r store.AttendeeRow, err error) {
			err = rows.Scan(&r.ID, &r.EventID, &r.ContactID, &r.Status, &r.CheckedInAt, &r.CreatedAt)
			return
		},
	}
}

func (s *Store) Invitees() store.Source[store.InviteeRow] {
	return &source[store.InviteeRow]{
		db: s.db, table: "invitees",
		columns: "id, event_id, contact_id, status, invited_at, created_at",
		scan: func(rows *sql.Rows) (r store.InviteeRow, err error) {
			err = rows.Scan(&r.ID, &r.EventID, &r.ContactID, &r.Status, &r.InvitedAt, &r.CreatedAt)
			return
		},
	}
}

func (s *Store) Departments() store.Source[store.DepartmentRow] {
	return &source[store.DepartmentRow]{
		db: s.db, table: "departments",
		columns: "id, name, name_ar, created_at",
		scan: func(rows *sql.Rows) (r store.DepartmentRow, err error) {
			err = rows.Scan(&r.ID, &r.Name, &r.NameAr, &r.CreatedAt)
			return
		},
	}
}

func (s *Store) ArchivedEvents() store.Source[store.ArchivedEventRow] {
	return &source[store.ArchivedEventRow]{
		db: s.db, table: "archived_events",
		columns: "id, title, title_ar, description, location, category_id, department_id, start_date, end_date, archived_at, created_at",
		scan: func(rows *sql.Rows) (r store.ArchivedEventRow, err error) {
			err = rows.Scan(&r.ID, &r.Title, &r.TitleAr, &r.Description, &r.Location,
				&r.CategoryID, &r.DepartmentID, &r.StartDate, &r.EndDate, &r.ArchivedAt, &r.CreatedAt)
			return
		},
	}
}

func (s *Store) Lookups() store.Lookups {
	return &lookups{db: s.db}
}

var _ store.Store = (*Store)(nil)

// IsNotFound reports whether err is the store's not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
