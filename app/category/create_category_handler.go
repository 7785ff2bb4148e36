package category

import (
	"catalog/app"
	"catalog/domain"
	"catalog/internal/middleware"
	"catalog/pkg/events"
	"catalog/pkg/flash"
	"catalog/pkg/httperror"
	"context"

	"go.uber.org/zap"
)

type CreateCategoryHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewCreateCategoryHandler(repository Repository, eventPublisher events.Publisher) *CreateCategoryHandler {
	return &CreateCategoryHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

// CreateCategoryRequest carries the submitted form fields. The name is not
// validated: empty and duplicate names are persisted as submitted.
type CreateCategoryRequest struct {
	app.CategoryFields
}

func (h CreateCategoryHandler) Handle(ctx context.Context, req *CreateCategoryRequest) (*app.Result, error) {
	category, err := h.repository.CreateCategory(ctx, req.CategoryFields)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.create.create_failed",
			"An error occurred while creating the category",
			nil,
		)
	}

	h.publishEvent(ctx, category)

	return app.RedirectWithFlash(
		ListPath,
		flash.Successf("%s Created Successfully", category.CategoryName),
	), nil
}

func (h CreateCategoryHandler) publishEvent(ctx context.Context, category domain.Category) {
	if h.eventPublisher != nil {
		eventPayload := events.CategoryCreatedPayload{
			CategoryID:   category.CategoryID,
			CategoryName: category.CategoryName,
			CreatedAt:    category.CreatedAt,
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
			events.CategoryCreatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.CategoryExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish category.created event",
				zap.Int64("categoryId", category.CategoryID),
				zap.Error(err),
			)
		}
	}
}
