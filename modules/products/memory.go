package products

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tenantward/tenantward/pkg/scope"
	"github.com/tenantward/tenantward/pkg/tenant"
)

// MemoryRepository keeps products in memory for tests and local runs.
// Reads are filtered through the same visibility predicate semantics the
// SQL repository gets from the scope registry.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Product
	visible scope.Predicate[*Product]
	nowFunc func() time.Time
}

// NewMemoryRepository creates an empty in-memory product repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]*Product),
		visible: scope.Visible[*Product](),
		nowFunc: time.Now,
	}
}

func (r *MemoryRepository) Insert(ctx context.Context, p *Product) error {
	if err := scope.Stamp(ctx, p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.TenantID == p.TenantID && existing.SKU == p.SKU && !existing.IsDeleted() {
			return fmt.Errorf("%w: %s", ErrSKUExists, p.SKU)
		}
	}

	now := r.nowFunc()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	if err := requireTenant(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || !r.visible(ctx, p) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, f ListFilter) ([]Product, error) {
	if err := requireTenant(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Product
	for _, p := range r.byID {
		if !r.visible(ctx, p) {
			continue
		}
		if f.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *Product) error {
	if err := requireTenant(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[p.ID]
	if !ok || !r.visible(ctx, existing) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, p.ID)
	}

	for _, other := range r.byID {
		if other.ID != p.ID && other.TenantID == existing.TenantID &&
			other.SKU == p.SKU && !other.IsDeleted() {
			return fmt.Errorf("%w: %s", ErrSKUExists, p.SKU)
		}
	}

	existing.Name = p.Name
	existing.SKU = p.SKU
	existing.PriceCents = p.PriceCents
	existing.Active = p.Active
	existing.UpdatedAt = r.nowFunc()
	return nil
}

func (r *MemoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := requireTenant(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || !r.visible(ctx, p) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	now := r.nowFunc()
	p.DeletedAt = &now
	return nil
}

// requireTenant makes reads fail closed: without a resolved tenant the
// repository returns an error rather than an empty result.
func requireTenant(ctx context.Context) error {
	if _, ok := tenant.IDFromContext(ctx); !ok {
		return scope.ErrNoTenantInScope
	}
	return nil
}
