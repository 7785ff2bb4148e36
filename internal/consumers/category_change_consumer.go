package consumers

import (
	"catalog/app"
	"catalog/domain"
	"catalog/pkg/events"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CategoryChangeHandler persists every category mutation event into the
// category_changes audit table.
type CategoryChangeHandler struct {
	repository app.Repository
	logger     *zap.Logger
}

func NewCategoryChangeHandler(repository app.Repository, logger *zap.Logger) *CategoryChangeHandler {
	return &CategoryChangeHandler{
		repository: repository,
		logger:     logger,
	}
}

func (h *CategoryChangeHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Category event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.CategoryCreatedEvent, events.CategoryUpdatedEvent, events.CategoryDeletedEvent:
		return h.recordChange(ctx, event)
	default:
		zap.L().Warn("Unknown category event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *CategoryChangeHandler) recordChange(ctx context.Context, event *events.Event) error {
	// Payload arrives as a decoded JSON map; round-trip it into the typed
	// shape shared with the publisher side.
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	var payload events.CategoryUpdatedPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}

	if payload.CategoryID == 0 {
		return fmt.Errorf("malformed payload - categoryID missing or invalid")
	}

	occurredAt := event.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	change := domain.CategoryChange{
		CategoryID:   payload.CategoryID,
		Event:        event.Event,
		CategoryName: payload.CategoryName,
		TraceID:      event.TraceID,
		OccurredAt:   occurredAt,
	}
	if event.Event == events.CategoryUpdatedEvent && payload.PriorName != "" {
		prior := payload.PriorName
		change.PriorName = &prior
	}

	recorded, err := h.repository.InsertCategoryChange(ctx, change)
	if err != nil {
		return fmt.Errorf("failed to record category change: %w", err)
	}

	zap.L().Info("Category change recorded",
		zap.Int64("changeId", recorded.ChangeID),
		zap.Int64("categoryId", recorded.CategoryID),
		zap.String("event", recorded.Event),
	)

	return nil
}
