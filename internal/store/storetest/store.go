// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"sort"
	"time"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// Store is an in-memory store.Store. Seed the exported slices and maps
// directly; zero values behave as empty tables.
type Store struct {
	EventRows        []store.EventRow
	TaskRows         []store.TaskRow
	ContactRows      []store.ContactRow
	OrganizationRows []store.OrganizationRow
	LeadRows         []store.LeadRow
	AgreementRows    []store.AgreementRow
	ActivityRows     []store.ActivityRow
	InteractionRows  []store.InteractionRow
	UpdateRows       []store.UpdateRow
	AttendeeRows     []store.AttendeeRow
	InviteeRows      []store.InviteeRow
	DepartmentRows   []store.DepartmentRow
	ArchivedRows     []store.ArchivedEventRow

	DepartmentNameMap   map[int64]string
	CategoryNameMap     map[int64]string
	OrganizationNameMap map[int64]string
	UserNameMap         map[int64]string
	ContactNameMap      map[int64]string
	EventTitleMap       map[int64]string
	AttendeeCountMap    map[int64]int
	InviteeCountMap     map[int64]int
	ContactCountMap     map[int64]int

	// LookupQueries counts calls into the Lookups interface, letting tests
	// assert that enrichment maps are loaded once per run, not per page.
	LookupQueries int
}

func New() *Store {
	return &Store{}
}

func (s *Store) Close() error { return nil }

// memSource adapts a slice to store.DeltaSource.
type memSource[T any] struct {
	rows    func() []T
	id      func(T) int64
	updated func(T) time.Time // zero func means no last-modified column
}

func (m *memSource[T]) Count(_ context.Context) (int, error) {
	return len(m.rows()), nil
}

func (m *memSource[T]) Page(_ context.Context, offset, limit int) ([]T, error) {
	rows := m.sorted()
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (m *memSource[T]) PageSince(_ context.Context, since time.Time, offset, limit int) ([]T, error) {
	var changed []T
	for _, r := range m.sorted() {
		if !m.updated(r).Before(since) {
			changed = append(changed, r)
		}
	}
	if offset >= len(changed) {
		return nil, nil
	}
	end := offset + limit
	if end > len(changed) {
		end = len(changed)
	}
	return changed[offset:end], nil
}

func (m *memSource[T]) Get(_ context.Context, id int64) (*T, error) {
	for _, r := range m.rows() {
		if m.id(r) == id {
			row := r
			return &row, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memSource[T]) IDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(m.rows()))
	for _, r := range m.rows() {
		ids = append(ids, m.id(r))
	}
	return ids, nil
}

func (m *memSource[T]) sorted() []T {
	rows := append([]T(nil), m.rows()...)
	sort.Slice(rows, func(i, j int) bool { return m.id(rows[i]) < m.id(rows[j]) })
	return rows
}

func (s *Store) Events() store.DeltaSource[store.EventRow] {
	return &memSource[store.EventRow]{
		rows:    func() []store.EventRow { return s.EventRows },
		id:      func(r store.EventRow) int64 { return r.ID },
		updated: func(r store.EventRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Tasks() store.DeltaSource[store.TaskRow] {
	return &memSource[store.TaskRow]{
		rows:    func() []store.TaskRow { return s.TaskRows },
		id:      func(r store.TaskRow) int64 { return r.ID },
		updated: func(r store.TaskRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Contacts() store.DeltaSource[store.ContactRow] {
	return &memSource[store.ContactRow]{
		rows:    func() []store.ContactRow { return s.ContactRows },
		id:      func(r store.ContactRow) int64 { return r.ID },
		updated: func(r store.ContactRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Organizations() store.DeltaSource[store.OrganizationRow] {
	return &memSource[store.OrganizationRow]{
		rows:    func() []store.OrganizationRow { return s.OrganizationRows },
		id:      func(r store.OrganizationRow) int64 { return r.ID },
		updated: func(r store.OrganizationRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Leads() store.DeltaSource[store.LeadRow] {
	return &memSource[store.LeadRow]{
		rows:    func() []store.LeadRow { return s.LeadRows },
		id:      func(r store.LeadRow) int64 { return r.ID },
		updated: func(r store.LeadRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Agreements() store.DeltaSource[store.AgreementRow] {
	return &memSource[store.AgreementRow]{
		rows:    func() []store.AgreementRow { return s.AgreementRows },
		id:      func(r store.AgreementRow) int64 { return r.ID },
		updated: func(r store.AgreementRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Activities() store.DeltaSource[store.ActivityRow] {
	return &memSource[store.ActivityRow]{
		rows:    func() []store.ActivityRow { return s.ActivityRows },
		id:      func(r store.ActivityRow) int64 { return r.ID },
		updated: func(r store.ActivityRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Interactions() store.DeltaSource[store.InteractionRow] {
	return &memSource[store.InteractionRow]{
		rows:    func() []store.InteractionRow { return s.InteractionRows },
		id:      func(r store.InteractionRow) int64 { return r.ID },
		updated: func(r store.InteractionRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Updates() store.DeltaSource[store.UpdateRow] {
	return &memSource[store.UpdateRow]{
		rows:    func() []store.UpdateRow { return s.UpdateRows },
		id:      func(r store.UpdateRow) int64 { return r.ID },
		updated: func(r store.UpdateRow) time.Time { return r.UpdatedAt },
	}
}

func (s *Store) Attendees() store.Source[store.AttendeeRow] {
	return &memSource[store.AttendeeRow]{
		rows: func() []store.AttendeeRow { return s.AttendeeRows },
		id:   func(r store.AttendeeRow) int64 { return r.ID },
	}
}

func (s *Store) Invitees() store.Source[store.InviteeRow] {
	return &memSource[store.InviteeRow]{
		rows: func() []store.InviteeRow { return s.InviteeRows },
		id:   func(r store.InviteeRow) int64 { return r.ID },
	}
}

func (s *Store) Departments() store.Source[store.DepartmentRow] {
	return &memSource[store.DepartmentRow]{
		rows: func() []store.DepartmentRow { return s.DepartmentRows },
		id:   func(r store.DepartmentRow) int64 { return r.ID },
	}
}

func (s *Store) ArchivedEvents() store.Source[store.ArchivedEventRow] {
	return &memSource[store.ArchivedEventRow]{
		rows: func() []store.ArchivedEventRow { return s.ArchivedRows },
		id:   func(r store.ArchivedEventRow) int64 { return r.ID },
	}
}

func (s *Store) Lookups() store.Lookups {
	return (*memLookups)(s)
}

type memLookups Store

func (l *memLookups) DepartmentNames(_ context.Context) (map[int64]string, error) {
	l.LookupQueries++
	return orEmpty(l.DepartmentNameMap), nil
}

func (l *memLookups) CategoryNames(_ context.Context) (map[int64]string, error) {
	l.LookupQueries++
	return orEmpty(l.CategoryNameMap), nil
}

func (l *memLookups) OrganizationNames(_ context.Context) (map[int64]string, error) {
	l.LookupQueries++
	return orEmpty(l.OrganizationNameMap), nil
}

func (l *memLookups) UserNames(_ context.Context) (map[int64]string, error) {
	l.LookupQueries++
	return orEmpty(l.UserNameMap), nil
}

func (l *memLookups) ContactNames(_ context.Context) (map[int64]string, error) {
	l.LookupQueries++
	return orEmpty(l.ContactNameMap), nil
}

func (l *memLookups) EventTitles(_ context.Context) (map[int64]string, error) {
	l.LookupQueries++
	return orEmpty(l.EventTitleMap), nil
}

func (l *memLookups) AttendeeCounts(_ context.Context) (map[int64]int, error) {
	l.LookupQueries++
	return orEmpty(l.AttendeeCountMap), nil
}

func (l *memLookups) InviteeCounts(_ context.Context) (map[int64]int, error) {
	l.LookupQueries++
	return orEmpty(l.InviteeCountMap), nil
}

func (l *memLookups) ContactCounts(_ context.Context) (map[int64]int, error) {
	l.LookupQueries++
	return orEmpty(l.ContactCountMap), nil
}

func orEmpty[V any](m map[int64]V) map[int64]V {
	if m == nil {
		return map[int64]V{}
	}
	return m
}

var _ store.Store = (*Store)(nil)
