package app

import (
	"catalog/domain"
	"context"
)

// CategoryFields are the client-submitted category attributes. Values are
// persisted as-is: empty or duplicate names are accepted, a known gap kept
// from the original workflow.
type CategoryFields struct {
	CategoryName string `form:"categoryName" db:"category_name"`
}

type Repository interface {
	Close() error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (domain.Category, error)
	CreateCategory(ctx context.Context, fields CategoryFields) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category, fields CategoryFields) (domain.Category, error)
	DeleteCategory(ctx context.Context, category domain.Category) error
	GetProducts(ctx context.Context) ([]domain.ProductRow, error)
	GetProductByID(ctx context.Context, id int64) (domain.ProductRow, error)
	InsertCategoryChange(ctx context.Context, change domain.CategoryChange) (domain.CategoryChange, error)
}
