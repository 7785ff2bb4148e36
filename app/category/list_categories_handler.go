package category

import (
	"catalog/app"
	"catalog/pkg/httperror"
	"context"
)

type ListCategoriesHandler struct {
	repository Repository
}

func NewListCategoriesHandler(repository Repository) *ListCategoriesHandler {
	return &ListCategoriesHandler{
		repository: repository,
	}
}

type ListCategoriesRequest struct {
}

func (h ListCategoriesHandler) Handle(ctx context.Context, req *ListCategoriesRequest) (*app.Result, error) {
	categories, err := h.repository.GetCategories(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"category.index.failed",
			"Failed to retrieve categories",
			nil,
		)
	}

	return &app.Result{
		Page: &app.Page{
			Template:        "products/categories",
			Title:           "Product Categories",
			MetaDescription: "Catalog Product Categories",
			TakeFlash:       true,
			Data: map[string]interface{}{
				"Categories": categories,
			},
		},
	}, nil
}
