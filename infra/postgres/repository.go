package postgres

import (
	"catalog/app"
	"catalog/domain"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port, sslMode string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	))

	// Connection pool configuration, sized for a handful of replicas against
	// the default PG max_connections=100.
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

// GetPoolStats returns current connection pool statistics
func (r *PgRepository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}

func (r *PgRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	query := `SELECT * FROM categories ORDER BY category_id`

	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// GetCategoryByID returns sql.ErrNoRows when the id has no matching row.
func (r *PgRepository) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	query := `SELECT * FROM categories WHERE category_id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		return c, err
	}

	return c, nil
}

func (r *PgRepository) CreateCategory(ctx context.Context, fields app.CategoryFields) (domain.Category, error) {
	var c domain.Category
	query := `
		INSERT INTO categories (category_name)
		VALUES (:category_name)
		RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, fields)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&c)
	}
	return c, err
}

func (r *PgRepository) UpdateCategory(ctx context.Context, category domain.Category, fields app.CategoryFields) (domain.Category, error) {
	var c domain.Category
	query := `
		UPDATE categories
		SET category_name = $1, updated_at = now()
		WHERE category_id = $2
		RETURNING *`

	err := r.db.GetContext(ctx, &c, query, fields.CategoryName, category.CategoryID)
	if err != nil {
		return c, err
	}

	return c, nil
}

func (r *PgRepository) DeleteCategory(ctx context.Context, category domain.Category) error {
	query := `DELETE FROM categories WHERE category_id = $1`

	res, err := r.db.ExecContext(ctx, query, category.CategoryID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetProducts joins each product with its category name. The join is inner:
// a product whose category is gone does not appear in the listing.
func (r *PgRepository) GetProducts(ctx context.Context) ([]domain.ProductRow, error) {
	products := make([]domain.ProductRow, 0)
	query := `
		SELECT p.product_id, p.product_name, c.category_name, p.description, p.list_price
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		ORDER BY p.product_id`

	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PgRepository) GetProductByID(ctx context.Context, id int64) (domain.ProductRow, error) {
	var p domain.ProductRow
	query := `
		SELECT p.product_id, p.product_name, c.category_name, p.description, p.list_price
		FROM products p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.product_id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return p, err
	}

	return p, nil
}

func (r *PgRepository) InsertCategoryChange(ctx context.Context, change domain.CategoryChange) (domain.CategoryChange, error) {
	var c domain.CategoryChange
	query := `
		INSERT INTO category_changes (
			category_id, event, category_name, prior_name, trace_id, occurred_at
		) VALUES (
			:category_id, :event, :category_name, :prior_name, :trace_id, :occurred_at
		) RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, change)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&c)
	}
	return c, err
}
