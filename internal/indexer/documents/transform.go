package documents

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

// nowFunc is swapped in tests to pin time-dependent derivations.
var nowFunc = time.Now

// DocID converts a relational primary key into the stable document id.
// Same row, same id, every reindex: indexing is an idempotent upsert.
func DocID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Event builds the search document for an event row.
func Event(row store.EventRow, enr EventEnrichment) EventDocument {
	now := nowFunc()
	return EventDocument{
		ID:             DocID(row.ID),
		Title:          row.Title,
		TitleAr:        row.TitleAr,
		Description:    row.Description,
		Location:       row.Location,
		Status:         row.Status,
		CategoryID:     row.CategoryID,
		CategoryName:   enr.CategoryName,
		DepartmentID:   row.DepartmentID,
		DepartmentName: enr.DepartmentName,
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		AttendeeCount:  enr.AttendeeCount,
		InviteeCount:   enr.InviteeCount,
		AttendanceRate: rate(enr.AttendeeCount, enr.InviteeCount),
		IsUpcoming:     row.StartDate != nil && row.StartDate.After(now),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		SearchText: searchText(row.Title, deref(row.TitleAr), deref(row.Description),
			deref(row.Location), deref(enr.CategoryName), deref(enr.DepartmentName)),
		Suggest: suggest([]string{row.Title, deref(row.TitleAr)}, deref(enr.CategoryName), EntityEvents),
	}
}

// Task builds the search document for a task row.
func Task(row store.TaskRow, enr TaskEnrichment) TaskDocument {
	now := nowFunc()
	overdue := row.DueDate != nil && row.DueDate.Before(now) &&
		row.Status != "completed" && row.Status != "cancelled"

	var completionDays *int
	if row.CompletedAt != nil {
		days := int(row.CompletedAt.Sub(row.CreatedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		completionDays = &days
	}

	return TaskDocument{
		ID:             DocID(row.ID),
		Title:          row.Title,
		Description:    row.Description,
		Status:         row.Status,
		Priority:       row.Priority,
		DueDate:        row.DueDate,
		CompletedAt:    row.CompletedAt,
		AssigneeID:     row.AssigneeID,
		AssigneeName:   enr.AssigneeName,
		DepartmentID:   row.DepartmentID,
		DepartmentName: enr.DepartmentName,
		EventID:        row.EventID,
		EventTitle:     enr.EventTitle,
		IsOverdue:      overdue,
		CompletionDays: completionDays,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		SearchText: searchText(row.Title, deref(row.Description), deref(enr.AssigneeName),
			deref(enr.DepartmentName), deref(enr.EventTitle)),
		Suggest: suggest([]string{row.Title}, row.Priority, EntityTasks),
	}
}

// Contact builds the search document for a contact row.
func Contact(row store.ContactRow, enr ContactEnrichment) ContactDocument {
	fullName := strings.TrimSpace(row.FirstName + " " + row.LastName)
	return ContactDocument{
		ID:               DocID(row.ID),
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		FullName:         fullName,
		Email:            row.Email,
		Phone:            row.Phone,
		JobTitle:         row.JobTitle,
		OrganizationID:   row.OrganizationID,
		OrganizationName: enr.OrganizationName,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		SearchText: searchText(fullName, deref(row.Email), deref(row.JobTitle),
			deref(enr.OrganizationName)),
		Suggest: suggest([]string{fullName, row.LastName}, deref(enr.OrganizationName), EntityContacts),
	}
}

// Organization builds the search document for an organization row.
func Organization(row store.OrganizationRow, enr OrganizationEnrichment) OrganizationDocument {
	return OrganizationDocument{
		ID:           DocID(row.ID),
		Name:         row.Name,
		NameAr:       row.NameAr,
		Sector:       row.Sector,
		Country:      row.Country,
		Website:      row.Website,
		ContactCount: enr.ContactCount,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		SearchText: searchText(row.Name, deref(row.NameAr), deref(row.Sector),
			deref(row.Country)),
		Suggest: suggest([]string{row.Name, deref(row.NameAr)}, deref(row.Sector), EntityOrganizations),
	}
}

// Lead builds the search document for a lead row.
func Lead(row store.LeadRow, enr LeadEnrichment) LeadDocument {
	return LeadDocument{
		ID:               DocID(row.ID),
		Name:             row.Name,
		Status:           row.Status,
		Source:           row.Source,
		OrganizationID:   row.OrganizationID,
		OrganizationName: enr.OrganizationName,
		OwnerID:          row.OwnerID,
		OwnerName:        enr.OwnerName,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		SearchText: searchText(row.Name, deref(row.Source), deref(enr.OrganizationName),
			deref(enr.OwnerName)),
		Suggest: suggest([]string{row.Name}, row.Status, EntityLeads),
	}
}

// Agreement builds the search document for an agreement row.
func Agreement(row store.AgreementRow, enr AgreementEnrichment) AgreementDocument {
	now := nowFunc()
	return AgreementDocument{
		ID:               DocID(row.ID),
		Title:            row.Title,
		Type:             row.Type,
		Status:           row.Status,
		OrganizationID:   row.OrganizationID,
		OrganizationName: enr.OrganizationName,
		SignedDate:       row.SignedDate,
		ExpiryDate:       row.ExpiryDate,
		IsExpired:        row.ExpiryDate != nil && row.ExpiryDate.Before(now),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		SearchText:       searchText(row.Title, row.Type, deref(enr.OrganizationName)),
		Suggest:          suggest([]string{row.Title}, row.Type, EntityAgreements),
	}
}

// Attendee builds the search document for an attendee row.
func Attendee(row store.AttendeeRow, enr AttendeeEnrichment) AttendeeDocument {
	return AttendeeDocument{
		ID:          DocID(row.ID),
		EventID:     row.EventID,
		EventTitle:  enr.EventTitle,
		ContactID:   row.ContactID,
		ContactName: enr.ContactName,
		Status:      row.Status,
		Attended:    row.Status == "attended",
		CheckedInAt: row.CheckedInAt,
		CreatedAt:   row.CreatedAt,
		SearchText:  searchText(deref(enr.ContactName), deref(enr.EventTitle), row.Status),
		Suggest:     suggest([]string{deref(enr.ContactName)}, deref(enr.EventTitle), EntityAttendees),
	}
}

// Invitee builds the search document for an invitee row.
func Invitee(row store.InviteeRow, enr InviteeEnrichment) InviteeDocument {
	return InviteeDocument{
		ID:          DocID(row.ID),
		EventID:     row.EventID,
		EventTitle:  enr.EventTitle,
		ContactID:   row.ContactID,
		ContactName: enr.ContactName,
		Status:      row.Status,
		Accepted:    row.Status == "accepted",
		InvitedAt:   row.InvitedAt,
		CreatedAt:   row.CreatedAt,
		SearchText:  searchText(deref(enr.ContactName), deref(enr.EventTitle), row.Status),
		Suggest:     suggest([]string{deref(enr.ContactName)}, deref(enr.EventTitle), EntityInvitees),
	}
}

// Activity builds the search document for an activity row.
func Activity(row store.ActivityRow, enr ActivityEnrichment) ActivityDocument {
	return ActivityDocument{
		ID:            DocID(row.ID),
		Type:          row.Type,
		Subject:       row.Subject,
		Notes:         row.Notes,
		ContactID:     row.ContactID,
		ContactName:   enr.ContactName,
		EventID:       row.EventID,
		EventTitle:    enr.EventTitle,
		CreatedBy:     row.CreatedBy,
		CreatedByName: enr.CreatedByName,
		OccurredAt:    row.OccurredAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		SearchText: searchText(row.Subject, deref(row.Notes), deref(enr.ContactName),
			deref(enr.EventTitle)),
		Suggest: suggest([]string{row.Subject}, row.Type, EntityActivities),
	}
}

// Interaction builds the search document for an interaction row.
func Interaction(row store.InteractionRow, enr InteractionEnrichment) InteractionDocument {
	return InteractionDocument{
		ID:          DocID(row.ID),
		ContactID:   row.ContactID,
		ContactName: enr.ContactName,
		Channel:     row.Channel,
		Summary:     row.Summary,
		OccurredAt:  row.OccurredAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		SearchText:  searchText(deref(enr.ContactName), row.Channel, deref(row.Summary)),
		Suggest:     suggest([]string{deref(enr.ContactName)}, row.Channel, EntityInteractions),
	}
}

// Department builds the search document for a department row.
func Department(row store.DepartmentRow) DepartmentDocument {
	return DepartmentDocument{
		ID:         DocID(row.ID),
		Name:       row.Name,
		NameAr:     row.NameAr,
		CreatedAt:  row.CreatedAt,
		SearchText: searchText(row.Name, deref(row.NameAr)),
		Suggest:    suggest([]string{row.Name, deref(row.NameAr)}, "", EntityDepartments),
	}
}

// ArchivedEvent builds the search document for an archived event row.
func ArchivedEvent(row store.ArchivedEventRow, enr ArchivedEventEnrichment) ArchivedEventDocument {
	return ArchivedEventDocument{
		ID:             DocID(row.ID),
		Title:          row.Title,
		TitleAr:        row.TitleAr,
		Description:    row.Description,
		Location:       row.Location,
		CategoryID:     row.CategoryID,
		CategoryName:   enr.CategoryName,
		DepartmentID:   row.DepartmentID,
		DepartmentName: enr.DepartmentName,
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		ArchivedAt:     row.ArchivedAt,
		CreatedAt:      row.CreatedAt,
		SearchText: searchText(row.Title, deref(row.TitleAr), deref(row.Description),
			deref(row.Location), deref(enr.CategoryName), deref(enr.DepartmentName)),
		Suggest: suggest([]string{row.Title, deref(row.TitleAr)}, deref(enr.CategoryName), EntityArchivedEvents),
	}
}

// Update builds the search document for an update row.
func Update(row store.UpdateRow, enr UpdateEnrichment) UpdateDocument {
	return UpdateDocument{
		ID:          DocID(row.ID),
		Title:       row.Title,
		Body:        row.Body,
		AuthorID:    row.AuthorID,
		AuthorName:  enr.AuthorName,
		PublishedAt: row.PublishedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		SearchText:  searchText(row.Title, deref(row.Body), deref(enr.AuthorName)),
		Suggest:     suggest([]string{row.Title}, "", EntityUpdates),
	}
}

// rate computes a percentage, guarding division by zero: no invitees
// means a 0% attendance rate, never NaN.
func rate(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// searchText joins the human-searchable fields with single spaces,
// dropping empty values.
func searchText(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// suggest builds the autocomplete payload, dropping empty name variants.
func suggest(inputs []string, category, entityType string) Suggest {
	kept := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in != "" {
			kept = append(kept, in)
		}
	}
	return Suggest{
		Input: kept,
		Contexts: map[string]string{
			"category": category,
			"type":     entityType,
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
