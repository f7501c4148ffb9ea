package tenant

import (
	"context"
	"time"
)

// Tenant is the minimal tenant record the request pipeline needs. The ID
// is a normalized lowercase slug, stable enough to serve as a partition
// key for tenant-owned data.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Store loads tenant records for validation. Implementations must return
// ErrTenantNotFound when no tenant matches the identifier.
type Store interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
}
