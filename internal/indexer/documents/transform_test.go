package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/store"
)

func pinTime(t *testing.T, now time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = old })
}

func strPtr(s string) *string       { return &s }
func i64Ptr(i int64) *int64         { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func TestDocID(t *testing.T) {
	assert.Equal(t, "42", DocID(42))
	assert.Equal(t, "42", DocID(42), "same row must map to the same id")
}

func TestEventDocument(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pinTime(t, now)

	row := store.EventRow{
		ID:           7,
		Title:        "Annual Forum",
		TitleAr:      strPtr("المنتدى السنوي"),
		Status:       "scheduled",
		CategoryID:   i64Ptr(3),
		DepartmentID: i64Ptr(2),
		StartDate:    timePtr(now.Add(48 * time.Hour)),
		CreatedAt:    now.Add(-time.Hour),
		UpdatedAt:    now,
	}
	enr := EventEnrichment{
		CategoryName:   strPtr("Conferences"),
		DepartmentName: strPtr("Research"),
		AttendeeCount:  30,
		InviteeCount:   40,
	}

	doc := Event(row, enr)

	assert.Equal(t, "7", doc.ID)
	assert.Equal(t, 75, doc.AttendanceRate)
	assert.True(t, doc.IsUpcoming)
	assert.Equal(t, "Annual Forum المنتدى السنوي Conferences Research", doc.SearchText)
	assert.Equal(t, []string{"Annual Forum", "المنتدى السنوي"}, doc.Suggest.Input)
	assert.Equal(t, "Conferences", doc.Suggest.Contexts["category"])
	assert.Equal(t, EntityEvents, doc.Suggest.Contexts["type"])
}

func TestEventDocumentNoInvitees(t *testing.T) {
	pinTime(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	doc := Event(store.EventRow{ID: 1, Title: "Workshop"}, EventEnrichment{AttendeeCount: 5})

	assert.Equal(t, 0, doc.AttendanceRate, "no invitees must yield 0, not a division error")
	assert.False(t, doc.IsUpcoming, "missing start date is not upcoming")
	assert.Nil(t, doc.CategoryName)
	assert.Equal(t, []string{"Workshop"}, doc.Suggest.Input, "empty name variants are dropped")
}

func TestTaskDocumentOverdue(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	pinTime(t, now)

	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name    string
		status  string
		due     *time.Time
		overdue bool
	}{
		{"past due pending", "pending", &past, true},
		{"past due completed", "completed", &past, false},
		{"past due cancelled", "cancelled", &past, false},
		{"no due date", "pending", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := Task(store.TaskRow{ID: 1, Title: "t", Status: tc.status, DueDate: tc.due}, TaskEnrichment{})
			assert.Equal(t, tc.overdue, doc.IsOverdue)
		})
	}
}

func TestTaskDocumentCompletionDays(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	doc := Task(store.TaskRow{
		ID:          1,
		Title:       "t",
		Status:      "completed",
		CreatedAt:   created,
		CompletedAt: timePtr(created.Add(72 * time.Hour)),
	}, TaskEnrichment{})

	require.NotNil(t, doc.CompletionDays)
	assert.Equal(t, 3, *doc.CompletionDays)

	// Clock skew can put completion before creation; clamp, don't go negative.
	doc = Task(store.TaskRow{
		ID:          2,
		Title:       "t",
		Status:      "completed",
		CreatedAt:   created,
		CompletedAt: timePtr(created.Add(-time.Hour)),
	}, TaskEnrichment{})
	require.NotNil(t, doc.CompletionDays)
	assert.Equal(t, 0, *doc.CompletionDays)

	doc = Task(store.TaskRow{ID: 3, Title: "t", Status: "pending", CreatedAt: created}, TaskEnrichment{})
	assert.Nil(t, doc.CompletionDays, "incomplete task carries null, not zero")
}

func TestContactDocumentFullName(t *testing.T) {
	doc := Contact(store.ContactRow{ID: 1, FirstName: "Sara", LastName: "Haddad"}, ContactEnrichment{})
	assert.Equal(t, "Sara Haddad", doc.FullName)
	assert.Equal(t, []string{"Sara Haddad", "Haddad"}, doc.Suggest.Input)

	doc = Contact(store.ContactRow{ID: 2, FirstName: "Madonna"}, ContactEnrichment{})
	assert.Equal(t, "Madonna", doc.FullName, "single name must not carry a trailing space")
}

func TestAgreementDocumentExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pinTime(t, now)

	doc := Agreement(store.AgreementRow{
		ID: 1, Title: "MoU", Type: "mou", Status: "active",
		ExpiryDate: timePtr(now.Add(-time.Hour)),
	}, AgreementEnrichment{})
	assert.True(t, doc.IsExpired)

	doc = Agreement(store.AgreementRow{ID: 2, Title: "MoU", Type: "mou", Status: "active"}, AgreementEnrichment{})
	assert.False(t, doc.IsExpired, "no expiry date means never expired")
}

func TestAttendeeDocumentStatus(t *testing.T) {
	doc := Attendee(store.AttendeeRow{ID: 1, EventID: 2, ContactID: 3, Status: "attended"}, AttendeeEnrichment{
		EventTitle:  strPtr("Forum"),
		ContactName: strPtr("Sara Haddad"),
	})
	assert.True(t, doc.Attended)
	assert.Equal(t, "Sara Haddad Forum attended", doc.SearchText)

	doc = Attendee(store.AttendeeRow{ID: 2, EventID: 2, ContactID: 4, Status: "no_show"}, AttendeeEnrichment{})
	assert.False(t, doc.Attended)
}

func TestInviteeDocumentStatus(t *testing.T) {
	doc := Invitee(store.InviteeRow{ID: 1, EventID: 2, ContactID: 3, Status: "accepted"}, InviteeEnrichment{})
	assert.True(t, doc.Accepted)
}

func TestSearchTextSkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "a b", searchText("a", "", "b", ""))
	assert.Equal(t, "", searchText("", ""))
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, rate(5, 0))
	assert.Equal(t, 0, rate(5, -1))
	assert.Equal(t, 50, rate(1, 2))
	assert.Equal(t, 33, rate(1, 3))
	assert.Equal(t, 67, rate(2, 3))
	assert.Equal(t, 100, rate(3, 3))
}

func TestTransformsAreDeterministic(t *testing.T) {
	pinTime(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	row := store.LeadRow{ID: 9, Name: "New Partner", Status: "open", OwnerID: i64Ptr(4)}
	enr := LeadEnrichment{OwnerName: strPtr("Omar")}

	assert.Equal(t, Lead(row, enr), Lead(row, enr))
}

func TestEntityTypesCoverAllDocuments(t *testing.T) {
	types := EntityTypes()
	assert.Len(t, types, 13)
	seen := map[string]bool{}
	for _, e := range types {
		assert.False(t, seen[e], "duplicate entity type %s", e)
		seen[e] = true
	}
	assert.True(t, seen[EntityEvents])
	assert.True(t, seen[EntityArchivedEvents])
}
