package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantward/tenantward/pkg/pg"
)

// Repository is the user storage contract. Lookups take an explicit
// tenant id: login runs before tenant enforcement, so there is no
// resolved tenant in context to scope by.
type Repository interface {
	GetByEmail(ctx context.Context, tenantID, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
}

// PGRepository stores users in Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository creates a Postgres-backed user repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) GetByEmail(ctx context.Context, tenantID, email string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, password_hash, disabled, created_at
		 FROM users WHERE tenant_id = $1 AND email = $2`,
		tenantID, email,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Disabled, &u.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("auth: get by email: %w", err)
	}
	return &u, nil
}

func (r *PGRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, email, password_hash, disabled, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Disabled, &u.CreatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("auth: get by id: %w", err)
	}
	return &u, nil
}

func (r *PGRepository) Create(ctx context.Context, u *User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, tenant_id, email, password_hash, disabled)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		u.ID, u.TenantID, u.Email, u.PasswordHash, u.Disabled,
	).Scan(&u.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
		}
		return fmt.Errorf("auth: create user: %w", err)
	}
	return nil
}
