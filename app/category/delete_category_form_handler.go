package category

import (
	"catalog/app"
	"catalog/pkg/flash"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type DeleteCategoryFormHandler struct {
	repository Repository
}

func NewDeleteCategoryFormHandler(repository Repository) *DeleteCategoryFormHandler {
	return &DeleteCategoryFormHandler{
		repository: repository,
	}
}

type DeleteCategoryFormRequest struct {
	CategoryID string `params:"id"`
}

// Handle renders the delete confirmation page. Nothing is deleted here.
func (h DeleteCategoryFormHandler) Handle(ctx context.Context, req *DeleteCategoryFormRequest) (*app.Result, error) {
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

	return &app.Result{
		Page: &app.Page{
			Template:        "products/category_delete",
			Title:           "Delete " + category.CategoryName,
			MetaDescription: "Catalog Categories",
			Data: map[string]interface{}{
				"Category": category,
			},
		},
	}, nil
}
