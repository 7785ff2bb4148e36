package product

import (
	"catalog/app"
	"catalog/pkg/htmltable"
	"catalog/pkg/httperror"
	"context"
	"html/template"
)

type ListProductsHandler struct {
	repository Repository
}

func NewListProductsHandler(repository Repository) *ListProductsHandler {
	return &ListProductsHandler{
		repository: repository,
	}
}

type ListProductsRequest struct {
}

// Handle renders the product listing as a generic record table. The record
// order fixed here is what the table header shows; products without a
// resolvable category never reach this handler (the repository join is
// inner).
func (h ListProductsHandler) Handle(ctx context.Context, req *ListProductsRequest) (*app.Result, error) {
	products, err := h.repository.GetProducts(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"product.index.failed",
			"Failed to retrieve products",
			nil,
		)
	}

	records := make([]htmltable.Record, 0, len(products))
	for _, p := range products {
		records = append(records, htmltable.Record{
			{Field: "productName", Value: p.ProductName},
			{Field: "categoryName", Value: p.CategoryName},
			{Field: "description", Value: p.Description},
			{Field: "listPrice", Value: p.ListPrice.String()},
		})
	}

	return &app.Result{
		Page: &app.Page{
			Template:        "products/products",
			Title:           "Products",
			MetaDescription: "Catalog Products",
			Data: map[string]interface{}{
				// The renderer output is a ready HTML fragment; template.HTML
				// keeps the view engine from escaping it.
				"Table": template.HTML(htmltable.Render(records)),
			},
		},
	}, nil
}
