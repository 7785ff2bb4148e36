package category

import (
	"catalog/app"
	"catalog/domain"
	"context"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (domain.Category, error)
	CreateCategory(ctx context.Context, fields app.CategoryFields) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category, fields app.CategoryFields) (domain.Category, error)
	DeleteCategory(ctx context.Context, category domain.Category) error
}
