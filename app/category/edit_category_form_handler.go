package category

import (
	"catalog/app"
	"catalog/pkg/flash"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type EditCategoryFormHandler struct {
	repository Repository
}

func NewEditCategoryFormHandler(repository Repository) *EditCategoryFormHandler {
	return &EditCategoryFormHandler{
		repository: repository,
	}
}

type EditCategoryFormRequest struct {
	CategoryID string `params:"id"`
}

func (h EditCategoryFormHandler) Handle(ctx context.Context, req *EditCategoryFormRequest) (*app.Result, error) {
	notFound := app.RedirectWithFlash(
		ListPath,
		flash.Errorf("That Category ID# %s Doesn't Exist", req.CategoryID),
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
			"category.edit.failed",
			"Failed to retrieve category",
			nil,
		)
	}

	return &app.Result{
		Page: &app.Page{
			Template:        "products/category_edit",
			Title:           "Edit " + category.CategoryName,
			MetaDescription: "Catalog Categories",
			Data: map[string]interface{}{
				"Category": category,
			},
		},
	}, nil
}
