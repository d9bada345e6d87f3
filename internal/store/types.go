package store

import "time"

// Row types mirror the relational tables that feed the search index.
// Nullable columns are pointers so downstream documents can emit JSON null.

// EventRow is an institutional event.
type EventRow struct {
	ID           int64
	Title        string
	TitleAr      *string
	Description  *string
	Location     *string
	Status       string
	CategoryID   *int64
	DepartmentID *int64
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskRow is a work item, optionally tied to an event.
type TaskRow struct {
	ID           int64
	Title        string
	Description  *string
	Status       string
	Priority     string
	DueDate      *time.Time
	CompletedAt  *time.Time
	AssigneeID   *int64
	DepartmentID *int64
	EventID      *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContactRow is a person in the partnership CRM.
type ContactRow struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	JobTitle       *string
	OrganizationID *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrganizationRow is a partner organization.
type OrganizationRow struct {
	ID        int64
	Name      string
	NameAr    *string
	Sector    *string
	Country   *string
	Website   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeadRow is a prospective partnership.
type LeadRow struct {
	ID             int64
	Name           string
	Status         string
	Source         *string
	OrganizationID *int64
	OwnerID        *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AgreementRow is a signed or pending partnership agreement.
type AgreementRow struct {
	ID             int64
	Title          string
	Type           string
	Status         string
	OrganizationID *int64
	SignedDate     *time.Time
	ExpiryDate     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AttendeeRow links a contact to an event they were checked in for.
// The table carries no last-modified column.
type AttendeeRow struct {
	ID          int64
	EventID     int64
	ContactID   int64
	Status      string
	CheckedInAt *time.Time
	CreatedAt   time.Time
}

// InviteeRow links a contact to an event invitation.
// The table carries no last-modified column.
type InviteeRow struct {
	ID        int64
	EventID   int64
	ContactID int64
	Status    string
	InvitedAt *time.Time
	CreatedAt time.Time
}

// ActivityRow is a logged outreach activity.
type ActivityRow struct {
	ID         int64
	Type       string
	Subject    string
	Notes      *string
	ContactID  *int64
	EventID    *int64
	CreatedBy  *int64
	OccurredAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InteractionRow is a recorded touchpoint with a contact.
type InteractionRow struct {
	ID         int64
	ContactID  *int64
	Channel    string
	Summary    *string
	OccurredAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DepartmentRow is an internal department.
// The table carries no last-modified column.
type DepartmentRow struct {
	ID        int64
	Name      string
	NameAr    *string
	CreatedAt time.Time
}

// ArchivedEventRow is an event moved out of the live events table.
// The archive is append-only and carries no last-modified column.
type ArchivedEventRow struct {
	ID           int64
	Title        string
	TitleAr      *string
	Description  *string
	Location     *string
	CategoryID   *int64
	DepartmentID *int64
	StartDate    *time.Time
	EndDate      *time.Time
	ArchivedAt   time.Time
	CreatedAt    time.Time
}

// UpdateRow is a published institutional update.
type UpdateRow struct {
	ID          int64
	Title       string
	Body        *string
	AuthorID    *int64
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
