package tenants

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tenantward/tenantward/pkg/tenant"
)

// MemoryRepository is an in-memory tenant repository for tests and
// local development without Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]tenant.Tenant
	nowFunc func() time.Time
}

// NewMemoryRepository creates an empty in-memory tenant repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]tenant.Tenant),
		nowFunc: time.Now,
	}
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, id)
	}
	return &t, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tenant.Tenant, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, t tenant.Tenant) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrTenantExists, t.ID)
	}
	t.CreatedAt = r.nowFunc()
	r.byID[t.ID] = t
	return &t, nil
}

func (r *MemoryRepository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", tenant.ErrTenantNotFound, id)
	}
	t.Active = active
	r.byID[id] = t
	return nil
}

func (r *MemoryRepository) Upsert(_ context.Context, t tenant.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[t.ID]; ok {
		t.CreatedAt = existing.CreatedAt
	} else {
		t.CreatedAt = r.nowFunc()
	}
	r.byID[t.ID] = t
	return nil
}
