package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// lookups loads the enrichment tables as id->value maps. One query per
// relationship; the sync orchestrator joins against these maps in memory.
type lookups struct {
	db *sql.DB
}

func (l *lookups) DepartmentNames(ctx context.Context) (map[int64]string, error) {
	return l.nameMap(ctx, "SELECT id, name FROM departments")
}

func (l *lookups) CategoryNames(ctx context.Context) (map[int64]string, error) {
	return l.nameMap(ctx, "SELECT id, name FROM event_categories")
}

func (l *lookups) OrganizationNames(ctx context.Context) (map[int64]string, error) {
	return l.nameMap(ctx, "SELECT id, name FROM organizations")
}

func (l *lookups) UserNames(ctx context.Context) (map[int64]string, error) {
	return l.nameMap(ctx, "SELECT id, full_name FROM users")
}

func (l *lookups) ContactNames(ctx context.Context) (map[int64]string, error) {
	return l.nameMap(ctx, "SELECT id, TRIM(first_name || ' ' || last_name) FROM contacts")
}

func (l *lookups) EventTitles(ctx context.Context) (map[int64]string, error) {
	return l.nameMap(ctx, "SELECT id, title FROM events")
}

func (l *lookups) AttendeeCounts(ctx context.Context) (map[int64]int, error) {
	return l.countMap(ctx, "SELECT event_id, COUNT(*) FROM attendees WHERE status = 'attended' GROUP BY event_id")
}

func (l *lookups) InviteeCounts(ctx context.Context) (map[int64]int, error) {
	return l.countMap(ctx, "SELECT event_id, COUNT(*) FROM invitees GROUP BY event_id")
}

func (l *lookups) ContactCounts(ctx context.Context) (map[int64]int, error) {
	return l.countMap(ctx, "SELECT organization_id, COUNT(*) FROM contacts WHERE organization_id IS NOT NULL GROUP BY organization_id")
}

func (l *lookups) nameMap(ctx context.Context, query string) (map[int64]string, error) {
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("lookup query: %w", err)
	}
	defer rows.Close()

	m := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		m[id] = name
	}
	return m, rows.Err()
}

func (l *lookups) countMap(ctx context.Context, query string) (map[int64]int, error) {
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("lookup query: %w", err)
	}
	defer rows.Close()

	m := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		m[id] = n
	}
	return m, rows.Err()
}
