// Package events carries row mutation notifications between the
// application's write path and the search synchronization engine over
// NATS. Delivery is best effort; the periodic full reindex repairs
// anything a dropped notification leaves stale.
package events

import "fmt"

// Actions carried on a change event.
const (
	ActionUpserted = "upserted"
	ActionDeleted  = "deleted"
)

// ChangeEvent announces that one row was created, updated or deleted.
type ChangeEvent struct {
	Entity string `json:"entity"`
	ID     int64  `json:"id"`
	Action string `json:"action"`
}

// Subject returns the NATS subject for one entity type's change events.
func Subject(prefix, entity string) string {
	return fmt.Sprintf("%s.%s", prefix, entity)
}
