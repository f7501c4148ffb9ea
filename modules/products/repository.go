package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantward/tenantward/pkg/pg"
	"github.com/tenantward/tenantward/pkg/scope"
)

// ListFilter narrows List results within the tenant's slice.
type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Repository is the product storage contract. Implementations enforce
// tenant scoping on every operation: reads see only the current tenant's
// live rows, inserts stamp the current tenant.
type Repository interface {
	Insert(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ListFilter) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// PGRepository stores products in Postgres. All queries are composed
// with the scope registry's mandatory tenant clause.
type PGRepository struct {
	pool     *pgxpool.Pool
	registry *scope.Registry
}

// NewPGRepository creates a Postgres-backed product repository. The
// registry must have the products kind registered.
func NewPGRepository(pool *pgxpool.Pool, registry *scope.Registry) *PGRepository {
	return &PGRepository{pool: pool, registry: registry}
}

func (r *PGRepository) Insert(ctx context.Context, p *Product) error {
	// Tenant assignment happens here, at the persistence boundary, so no
	// handler can forget it.
	if err := scope.Stamp(ctx, p); err != nil {
		return err
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (id, tenant_id, name, sku, price_cents, active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		p.ID, p.TenantID, p.Name, p.SKU, p.PriceCents, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrSKUExists, p.SKU)
		}
		return fmt.Errorf("products: insert: %w", err)
	}
	return nil
}

func (r *PGRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	clause, args, err := r.registry.Clause(ctx, EntityKind, 2)
	if err != nil {
		return nil, err
	}

	var p Product
	err = r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, sku, price_cents, active, created_at, updated_at, deleted_at
		 FROM products WHERE id = $1 AND `+clause,
		append([]any{id}, args...)...,
	).Scan(&p.ID, &p.TenantID, &p.Name, &p.SKU, &p.PriceCents, &p.Active,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("products: get: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) List(ctx context.Context, f ListFilter) ([]Product, error) {
	clause, args, err := r.registry.Clause(ctx, EntityKind, 1)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, tenant_id, name, sku, price_cents, active, created_at, updated_at, deleted_at
		 FROM products WHERE ` + clause
	if f.ActiveOnly {
		query += " AND active"
	}
	query += " ORDER BY created_at DESC"
	pos := len(args) + 1
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
		pos++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.SKU, &p.PriceCents, &p.Active,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("products: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepository) Update(ctx context.Context, p *Product) error {
	clause, args, err := r.registry.Clause(ctx, EntityKind, 6)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $2, sku = $3, price_cents = $4, active = $5, updated_at = now()
		 WHERE id = $1 AND `+clause,
		append([]any{p.ID, p.Name, p.SKU, p.PriceCents, p.Active}, args...)...)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrSKUExists, p.SKU)
		}
		return fmt.Errorf("products: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, p.ID)
	}
	return nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	clause, args, err := r.registry.Clause(ctx, EntityKind, 2)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET deleted_at = now() WHERE id = $1 AND `+clause,
		append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("products: soft delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return nil
}
