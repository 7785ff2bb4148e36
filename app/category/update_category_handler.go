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

	"go.uber.org/zap"
)

type UpdateCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewUpdateCategoryHandler(repository Repository, eventPublisher events.Publisher) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type UpdateCategoryRequest struct {
	CategoryID string `params:"id"`
	app.CategoryFields
}

// Handle renames a category. The fetch and the update are two separate
// statements with no transaction around them; concurrent edits of the same id
// can capture a prior name that another writer already superseded.
func (h UpdateCategoryHandler) Handle(ctx context.Context, req *UpdateCategoryRequest) (*app.Result, error) {
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
			"category.update.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	origName := category.CategoryName

	updated, err := h.repository.UpdateCategory(ctx, category, req.CategoryFields)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.update.update_failed",
			"An error occurred while updating the category",
			nil,
		)
	}

	h.publishEvent(ctx, updated, origName)

	return app.RedirectWithFlash(
		ListPath,
		flash.Successf("Changed %s -> %s", origName, updated.CategoryName),
	), nil
}

func (h UpdateCategoryHandler) publishEvent(ctx context.Context, category domain.Category, origName string) {
	if h.eventPublisher != nil {
		eventPayload := events.CategoryUpdatedPayload{
			CategoryID:   category.CategoryID,
			CategoryName: category.CategoryName,
			PriorName:    origName,
			UpdatedAt:    category.UpdatedAt,
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
			events.CategoryUpdatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CategoryExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish category.updated event",
				zap.Int64("categoryId", category.CategoryID),
				zap.Error(err),
			)
		}
	}
}
