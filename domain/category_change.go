package domain

import "time"

// CategoryChange is one audited mutation of a category, written by the worker
// from the category event stream.
type CategoryChange struct {
	ChangeID     int64     `json:"changeID" db:"change_id"`
	CategoryID   int64     `json:"categoryID" db:"category_id"`
	Event        string    `json:"event" db:"event"`
	CategoryName string    `json:"categoryName" db:"category_name"`
	PriorName    *string   `json:"priorName" db:"prior_name"`
	TraceID      string    `json:"traceId" db:"trace_id"`
	OccurredAt   time.Time `json:"occurredAt" db:"occurred_at"`
}
