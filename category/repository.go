package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested category does not exist.
var ErrNotFound = errors.New("category: not found")

// Repository provides read access to categories.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID fetches a category by its primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (Category, error) {
	const query = `
		SELECT id, name, description
		FROM categories
		WHERE id = $1
	`

	var c Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("category: query by id: %w", err)
	}

	return c, nil
}

// List fetches all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]Category, error) {
	const query = `
		SELECT id, name, description
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category: list: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("category: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category: iterate: %w", err)
	}

	return categories, nil
}
