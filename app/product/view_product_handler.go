package product

import (
	"catalog/app"
	"catalog/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"strconv"
)

type ViewProductHandler struct {
	repository Repository
}

func NewViewProductHandler(repository Repository) *ViewProductHandler {
	return &ViewProductHandler{
		repository: repository,
	}
}

type ViewProductRequest struct {
	ProductID string `params:"id"`
}

func (h ViewProductHandler) Handle(ctx context.Context, req *ViewProductRequest) (*app.Result, error) {
	missing := &app.Result{
		Page: &app.Page{
			Template:        "products/product_view",
			Title:           "Does Not Exist",
			MetaDescription: "Catalog Products",
			Data:            map[string]interface{}{},
		},
	}

	id, err := strconv.ParseInt(req.ProductID, 10, 64)
	if err != nil {
		return missing, nil
	}

	product, err := h.repository.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return missing, nil
		}

		return nil, httperror.InternalServerError(
			"product.view.failed",
			"Failed to retrieve product",
			nil,
		)
	}

	return &app.Result{
		Page: &app.Page{
			Template:        "products/product_view",
			Title:           product.ProductName,
			MetaDescription: "Catalog Products",
			Data: map[string]interface{}{
				"Product": product,
			},
		},
	}, nil
}
