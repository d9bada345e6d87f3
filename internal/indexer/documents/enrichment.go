package documents

// Enrichment structs carry foreign-key names and precomputed aggregates
// resolved outside the transforms. Name fields are pointers: an absent
// enrichment leaves the document field null.

type EventEnrichment struct {
	CategoryName   *string
	DepartmentName *string
	AttendeeCount  int
	InviteeCount   int
}

type TaskEnrichment struct {
	AssigneeName   *string
	DepartmentName *string
	EventTitle     *string
}

type ContactEnrichment struct {
	OrganizationName *string
}

type OrganizationEnrichment struct {
	ContactCount int
}

type LeadEnrichment struct {
	OrganizationName *string
	OwnerName        *string
}

type AgreementEnrichment struct {
	OrganizationName *string
}

type AttendeeEnrichment struct {
	EventTitle  *string
	ContactName *string
}

type InviteeEnrichment struct {
	EventTitle  *string
	ContactName *string
}

type ActivityEnrichment struct {
	ContactName   *string
	EventTitle    *string
	CreatedByName *string
}

type InteractionEnrichment struct {
	ContactName *string
}

type ArchivedEventEnrichment struct {
	CategoryName   *string
	DepartmentName *string
}

type UpdateEnrichment struct {
	AuthorName *string
}
