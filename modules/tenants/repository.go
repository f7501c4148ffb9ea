package tenants

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantward/tenantward/pkg/pg"
	"github.com/tenantward/tenantward/pkg/tenant"
)

// ErrTenantExists is returned when creating a tenant whose id is taken.
var ErrTenantExists = errors.New("tenants: tenant already exists")

// Repository is the tenant registry storage contract. It extends the
// read-only tenant.Store the validator uses with the admin operations.
type Repository interface {
	tenant.Store
	List(ctx context.Context) ([]tenant.Tenant, error)
	Create(ctx context.Context, t tenant.Tenant) (*tenant.Tenant, error)
	SetActive(ctx context.Context, id string, active bool) error
	Upsert(ctx context.Context, t tenant.Tenant) error
}

// PGRepository stores tenants in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository creates a Postgres-backed tenant repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, active, created_at FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Active, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, id)
		}
		return nil, fmt.Errorf("tenants: get %s: %w", id, err)
	}
	return &t, nil
}

func (r *PGRepository) List(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, active, created_at FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("tenants: list: %w", err)
	}
	defer rows.Close()

	var out []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("tenants: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, t tenant.Tenant) (*tenant.Tenant, error) {
	var created tenant.Tenant
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tenants (id, name, active)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, active, created_at`,
		t.ID, t.Name, t.Active,
	).Scan(&created.ID, &created.Name, &created.Active, &created.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: %s", ErrTenantExists, t.ID)
		}
		return nil, fmt.Errorf("tenants: create %s: %w", t.ID, err)
	}
	return &created, nil
}

func (r *PGRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tenants SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("tenants: set active %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, id)
	}
	return nil
}

func (r *PGRepository) Upsert(ctx context.Context, t tenant.Tenant) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, active)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, active = EXCLUDED.active, updated_at = now()`,
		t.ID, t.Name, t.Active)
	if err != nil {
		return fmt.Errorf("tenants: upsert %s: %w", t.ID, err)
	}
	return nil
}
