package products

import (
	"context"

	"github.com/google/uuid"
)

// ListProductsQuery pages through the current tenant's catalog.
type ListProductsQuery struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Queries reads the product catalog.
type Queries struct {
	repo Repository
}

// NewQueries creates the product query handler.
func NewQueries(repo Repository) *Queries {
	return &Queries{repo: repo}
}

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return q.repo.GetByID(ctx, id)
}

func (q *Queries) ListProducts(ctx context.Context, query ListProductsQuery) ([]Product, error) {
	if query.Limit <= 0 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	return q.repo.List(ctx, ListFilter{
		ActiveOnly: query.ActiveOnly,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
}
