package events

import "time"

// Domain constants
const (
	CategoryDomain   = "category"
	CategoryExchange = "catalog.category"
)

// Event names
const (
	CategoryCreatedEvent = "category.created"
	CategoryUpdatedEvent = "category.updated"
	CategoryDeletedEvent = "category.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// CategoryCreatedPayload represents the payload for category.created event
type CategoryCreatedPayload struct {
	CategoryID   int64     `json:"categoryID"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CategoryUpdatedPayload represents the payload for category.updated event
type CategoryUpdatedPayload struct {
	CategoryID   int64     `json:"categoryID"`
	CategoryName string    `json:"categoryName"`
	PriorName    string    `json:"priorName"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CategoryDeletedPayload represents the payload for category.deleted event
type CategoryDeletedPayload struct {
	CategoryID   int64     `json:"categoryID"`
	CategoryName string    `json:"categoryName"`
	DeletedAt    time.Time `json:"deletedAt"`
}
