package syncer

import (
	"context"
	"fmt"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/indexer/documents"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// enrichment holds every lookup table as an in-memory map for a sync run.
// Each map is loaded by exactly one query; transforms join against these
// maps at O(1) per row instead of querying per row.
type enrichment struct {
	departments   map[int64]string
	categories    map[int64]string
	organizations map[int64]string
	users         map[int64]string
	contacts      map[int64]string
	events        map[int64]string

	attendeeCounts map[int64]int
	inviteeCounts  map[int64]int
	contactCounts  map[int64]int
}

// loadEnrichment fetches all lookup tables up front. One query per
// relationship; this is the performance invariant that keeps full reindex
// from collapsing into N+1 queries.
func (o *Orchestrator) loadEnrichment(ctx context.Context) (*enrichment, error) {
	lk := o.store.Lookups()
	e := &enrichment{}
	var err error

	if e.departments, err = lk.DepartmentNames(ctx); err != nil {
		return nil, fmt.Errorf("load department names: %w", err)
	}
	if e.categories, err = lk.CategoryNames(ctx); err != nil {
		return nil, fmt.Errorf("load category names: %w", err)
	}
	if e.organizations, err = lk.OrganizationNames(ctx); err != nil {
		return nil, fmt.Errorf("load organization names: %w", err)
	}
	if e.users, err = lk.UserNames(ctx); err != nil {
		return nil, fmt.Errorf("load user names: %w", err)
	}
	if e.contacts, err = lk.ContactNames(ctx); err != nil {
		return nil, fmt.Errorf("load contact names: %w", err)
	}
	if e.events, err = lk.EventTitles(ctx); err != nil {
		return nil, fmt.Errorf("load event titles: %w", err)
	}
	if e.attendeeCounts, err = lk.AttendeeCounts(ctx); err != nil {
		return nil, fmt.Errorf("load attendee counts: %w", err)
	}
	if e.inviteeCounts, err = lk.InviteeCounts(ctx); err != nil {
		return nil, fmt.Errorf("load invitee counts: %w", err)
	}
	if e.contactCounts, err = lk.ContactCounts(ctx); err != nil {
		return nil, fmt.Errorf("load contact counts: %w", err)
	}
	return e, nil
}

// name resolves an optional foreign key against a lookup map, yielding
// nil (document null) when the key is absent or unresolvable.
func name(m map[int64]string, id *int64) *string {
	if id == nil {
		return nil
	}
	return nameByID(m, *id)
}

func nameByID(m map[int64]string, id int64) *string {
	if v, ok := m[id]; ok {
		return &v
	}
	return nil
}

// Per-entity document builders: resolve enrichment, run the pure
// transform, return the stable document id and body.

func (e *enrichment) eventDoc(row store.EventRow) (string, any) {
	doc := documents.Event(row, documents.EventEnrichment{
		CategoryName:   name(e.categories, row.CategoryID),
		DepartmentName: name(e.departments, row.DepartmentID),
		AttendeeCount:  e.attendeeCounts[row.ID],
		InviteeCount:   e.inviteeCounts[row.ID],
	})
	return doc.ID, doc
}

func (e *enrichment) taskDoc(row store.TaskRow) (string, any) {
	doc := documents.Task(row, documents.TaskEnrichment{
		AssigneeName:   name(e.users, row.AssigneeID),
		DepartmentName: name(e.departments, row.DepartmentID),
		EventTitle:     name(e.events, row.EventID),
	})
	return doc.ID, doc
}

func (e *enrichment) contactDoc(row store.ContactRow) (string, any) {
	doc := documents.Contact(row, documents.ContactEnrichment{
		OrganizationName: name(e.organizations, row.OrganizationID),
	})
	return doc.ID, doc
}

func (e *enrichment) organizationDoc(row store.OrganizationRow) (string, any) {
	doc := documents.Organization(row, documents.OrganizationEnrichment{
		ContactCount: e.contactCounts[row.ID],
	})
	return doc.ID, doc
}

func (e *enrichment) leadDoc(row store.LeadRow) (string, any) {
	doc := documents.Lead(row, documents.LeadEnrichment{
		OrganizationName: name(e.organizations, row.OrganizationID),
		OwnerName:        name(e.users, row.OwnerID),
	})
	return doc.ID, doc
}

func (e *enrichment) agreementDoc(row store.AgreementRow) (string, any) {
	doc := documents.Agreement(row, documents.AgreementEnrichment{
		OrganizationName: name(e.organizations, row.OrganizationID),
	})
	return doc.ID, doc
}

func (e *enrichment) attendeeDoc(row store.AttendeeRow) (string, any) {
	doc := documents.Attendee(row, documents.AttendeeEnrichment{
		EventTitle:  nameByID(e.events, row.EventID),
		ContactName: nameByID(e.contacts, row.ContactID),
	})
	return doc.ID, doc
}

func (e *enrichment) inviteeDoc(row store.InviteeRow) (string, any) {
	doc := documents.Invitee(row, documents.InviteeEnrichment{
		EventTitle:  nameByID(e.events, row.EventID),
		ContactName: nameByID(e.contacts, row.ContactID),
	})
	return doc.ID, doc
}

func (e *enrichment) activityDoc(row store.ActivityRow) (string, any) {
	doc := documents.Activity(row, documents.ActivityEnrichment{
		ContactName:   name(e.contacts, row.ContactID),
		EventTitle:    name(e.events, row.EventID),
		CreatedByName: name(e.users, row.CreatedBy),
	})
	return doc.ID, doc
}

func (e *enrichment) interactionDoc(row store.InteractionRow) (string, any) {
	doc := documents.Interaction(row, documents.InteractionEnrichment{
		ContactName: name(e.contacts, row.ContactID),
	})
	return doc.ID, doc
}

func (e *enrichment) departmentDoc(row store.DepartmentRow) (string, any) {
	doc := documents.Department(row)
	return doc.ID, doc
}

func (e *enrichment) archivedEventDoc(row store.ArchivedEventRow) (string, any) {
	doc := documents.ArchivedEvent(row, documents.ArchivedEventEnrichment{
		CategoryName:   name(e.categories, row.CategoryID),
		DepartmentName: name(e.departments, row.DepartmentID),
	})
	return doc.ID, doc
}

func (e *enrichment) updateDoc(row store.UpdateRow) (string, any) {
	doc := documents.Update(row, documents.UpdateEnrichment{
		AuthorName: name(e.users, row.AuthorID),
	})
	return doc.ID, doc
}
