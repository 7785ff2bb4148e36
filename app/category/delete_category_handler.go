package category

import (
	"catalog/app"
	"catalog/domain"
	"catalog/internal/middleware"
	"catalog/pkg/events"
	"catalog/pkg/flash"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

type DeleteCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteCategoryHandler(repository Repository, eventPublisher events.Publisher) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteCategoryRequest struct {
	CategoryID string `params:"id"`
}

// Handle deletes a category for good. The id never comes back: any later
// operation on it takes the not-found path.
func (h DeleteCategoryHandler) Handle(ctx context.Context, req *DeleteCategoryRequest) (*app.Result, error) {
	notFound := app.RedirectWithFlash(
		ListPath,
		flash.Errorf("A category with an ID of %s does not exist!", req.CategoryID),
	)

	id, ok := parseCategoryID(req.CategoryID)
	if !ok {
		return notFound, nil
	}

	category, err := h.repository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound, nil
		}

		return nil, httperror.InternalServerError(
			"category.destroy.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	origName := category.CategoryName

	if err := h.repository.DeleteCategory(ctx, category); err != nil {
		return nil, httperror.InternalServerError(
			"category.destroy.destroy_failed",
			"An error occurred while deleting the category",
			nil,
		)
	}

	h.publishEvent(ctx, category)

	return app.RedirectWithFlash(
		ListPath,
		flash.Successf("Deleted %s!", origName),
	), nil
}

func (h DeleteCategoryHandler) publishEvent(ctx context.Context, category domain.Category) {
	if h.eventPublisher != nil {
		eventPayload := events.CategoryDeletedPayload{
			CategoryID:   category.CategoryID,
			CategoryName: category.CategoryName,
			DeletedAt:    time.Now().UTC(),
		}

		correlationID := middleware.RequestID(ctx)
		if correlationID == "" {
			correlationID = events.GenerateCorrelationID()
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: correlationID,
			Service:       "catalog",
		}

		event := events.NewEvent(
			events.CategoryDeletedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CategoryExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish category.deleted event",
				zap.Int64("categoryId", category.CategoryID),
				zap.Error(err),
			)
		}
	}
}
