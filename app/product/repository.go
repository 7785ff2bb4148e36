package product

import (
	"catalog/domain"
	"context"
)

type Repository interface {
	GetProducts(ctx context.Context) ([]domain.ProductRow, error)
	GetProductByID(ctx context.Context, id int64) (domain.ProductRow, error)
}
