// Package documents defines the flat, search-optimized document for each
// entity type and the pure transforms that build them from relational rows.
//
// Index mappings are fixed schemas, so optional fields are pointers that
// serialize as JSON null rather than being omitted.
package documents

import "time"

// Entity type names. They double as the {entity} part of index names.
const (
	EntityEvents         = "events"
	EntityTasks          = "tasks"
	EntityContacts       = "contacts"
	EntityOrganizations  = "organizations"
	EntityLeads          = "leads"
	EntityAgreements     = "agreements"
	EntityAttendees      = "attendees"
	EntityInvitees       = "invitees"
	EntityActivities     = "activities"
	EntityInteractions   = "interactions"
	EntityDepartments    = "departments"
	EntityArchivedEvents = "archived-events"
	EntityUpdates        = "updates"
)

// EntityTypes lists every entity type in full-reindex order.
func EntityTypes() []string {
	return []string{
		EntityEvents,
		EntityTasks,
		EntityContacts,
		EntityOrganizations,
		EntityLeads,
		EntityAgreements,
		EntityAttendees,
		EntityInvitees,
		EntityActivities,
		EntityInteractions,
		EntityDepartments,
		EntityArchivedEvents,
		EntityUpdates,
	}
}

// Suggest backs autocomplete: name variants plus filtering contexts.
type Suggest struct {
	Input    []string          `json:"input"`
	Contexts map[string]string `json:"contexts"`
}

type EventDocument struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	TitleAr        *string    `json:"titleAr"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location"`
	Status         string     `json:"status"`
	CategoryID     *int64     `json:"categoryId"`
	CategoryName   *string    `json:"categoryName"`
	DepartmentID   *int64     `json:"departmentId"`
	DepartmentName *string    `json:"departmentName"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	AttendeeCount  int        `json:"attendeeCount"`
	InviteeCount   int        `json:"inviteeCount"`
	AttendanceRate int        `json:"attendanceRate"`
	IsUpcoming     bool       `json:"isUpcoming"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	SearchText     string     `json:"searchText"`
	Suggest        Suggest    `json:"suggest"`
}

type TaskDocument struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"dueDate"`
	CompletedAt    *time.Time `json:"completedAt"`
	AssigneeID     *int64     `json:"assigneeId"`
	AssigneeName   *string    `json:"assigneeName"`
	DepartmentID   *int64     `json:"departmentId"`
	DepartmentName *string    `json:"departmentName"`
	EventID        *int64     `json:"eventId"`
	EventTitle     *string    `json:"eventTitle"`
	IsOverdue      bool       `json:"isOverdue"`
	CompletionDays *int       `json:"completionDays"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	SearchText     string     `json:"searchText"`
	Suggest        Suggest    `json:"suggest"`
}

type ContactDocument struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	FullName         string    `json:"fullName"`
	Email            *string   `json:"email"`
	Phone            *string   `json:"phone"`
	JobTitle         *string   `json:"jobTitle"`
	OrganizationID   *int64    `json:"organizationId"`
	OrganizationName *string   `json:"organizationName"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	SearchText       string    `json:"searchText"`
	Suggest          Suggest   `json:"suggest"`
}

type OrganizationDocument struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NameAr       *string   `json:"nameAr"`
	Sector       *string   `json:"sector"`
	Country      *string   `json:"country"`
	Website      *string   `json:"website"`
	ContactCount int       `json:"contactCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	SearchText   string    `json:"searchText"`
	Suggest      Suggest   `json:"suggest"`
}

type LeadDocument struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	Source           *string   `json:"source"`
	OrganizationID   *int64    `json:"organizationId"`
	OrganizationName *string   `json:"organizationName"`
	OwnerID          *int64    `json:"ownerId"`
	OwnerName        *string   `json:"ownerName"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	SearchText       string    `json:"searchText"`
	Suggest          Suggest   `json:"suggest"`
}

type AgreementDocument struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	OrganizationID   *int64     `json:"organizationId"`
	OrganizationName *string    `json:"organizationName"`
	SignedDate       *time.Time `json:"signedDate"`
	ExpiryDate       *time.Time `json:"expiryDate"`
	IsExpired        bool       `json:"isExpired"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	SearchText       string     `json:"searchText"`
	Suggest          Suggest    `json:"suggest"`
}

type AttendeeDocument struct {
	ID          string     `json:"id"`
	EventID     int64      `json:"eventId"`
	EventTitle  *string    `json:"eventTitle"`
	ContactID   int64      `json:"contactId"`
	ContactName *string    `json:"contactName"`
	Status      string     `json:"status"`
	Attended    bool       `json:"attended"`
	CheckedInAt *time.Time `json:"checkedInAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	SearchText  string     `json:"searchText"`
	Suggest     Suggest    `json:"suggest"`
}

type InviteeDocument struct {
	ID          string     `json:"id"`
	EventID     int64      `json:"eventId"`
	EventTitle  *string    `json:"eventTitle"`
	ContactID   int64      `json:"contactId"`
	ContactName *string    `json:"contactName"`
	Status      string     `json:"status"`
	Accepted    bool       `json:"accepted"`
	InvitedAt   *time.Time `json:"invitedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	SearchText  string     `json:"searchText"`
	Suggest     Suggest    `json:"suggest"`
}

type ActivityDocument struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Subject       string     `json:"subject"`
	Notes         *string    `json:"notes"`
	ContactID     *int64     `json:"contactId"`
	ContactName   *string    `json:"contactName"`
	EventID       *int64     `json:"eventId"`
	EventTitle    *string    `json:"eventTitle"`
	CreatedBy     *int64     `json:"createdBy"`
	CreatedByName *string    `json:"createdByName"`
	OccurredAt    *time.Time `json:"occurredAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SearchText    string     `json:"searchText"`
	Suggest       Suggest    `json:"suggest"`
}

type InteractionDocument struct {
	ID          string     `json:"id"`
	ContactID   *int64     `json:"contactId"`
	ContactName *string    `json:"contactName"`
	Channel     string     `json:"channel"`
	Summary     *string    `json:"summary"`
	OccurredAt  *time.Time `json:"occurredAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	SearchText  string     `json:"searchText"`
	Suggest     Suggest    `json:"suggest"`
}

type DepartmentDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NameAr     *string   `json:"nameAr"`
	CreatedAt  time.Time `json:"createdAt"`
	SearchText string    `json:"searchText"`
	Suggest    Suggest   `json:"suggest"`
}

type ArchivedEventDocument struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	TitleAr        *string    `json:"titleAr"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location"`
	CategoryID     *int64     `json:"categoryId"`
	CategoryName   *string    `json:"categoryName"`
	DepartmentID   *int64     `json:"departmentId"`
	DepartmentName *string    `json:"departmentName"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	ArchivedAt     time.Time  `json:"archivedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	SearchText     string     `json:"searchText"`
	Suggest        Suggest    `json:"suggest"`
}

type UpdateDocument struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        *string    `json:"body"`
	AuthorID    *int64     `json:"authorId"`
	AuthorName  *string    `json:"authorName"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	SearchText  string     `json:"searchText"`
	Suggest     Suggest    `json:"suggest"`
}
