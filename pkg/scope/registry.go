package scope

import (
	"context"
	"fmt"

	"github.com/tenantward/tenantward/pkg/tenant"
)

// Filter describes how a tenant-owned table is scoped in SQL.
type Filter struct {
	// TenantColumn is the column holding the owning tenant id.
	TenantColumn string

	// SoftDeleteColumn, when set, names a nullable timestamp column; rows
	// with a non-null value are invisible.
	SoftDeleteColumn string
}

// Registry is the explicit, build-once mapping from entity kind to its
// scope filter. It is assembled at startup; every repository query against
// a tenant-owned table goes through Clause, so no query can bypass the
// tenant filter.
type Registry struct {
	filters map[string]Filter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[string]Filter)}
}

// Register adds an entity kind. Registration happens once at startup and
// the registry is read-only afterwards, so lookups need no locking.
func (r *Registry) Register(kind string, f Filter) error {
	if _, exists := r.filters[kind]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, kind)
	}
	if f.TenantColumn == "" {
		return fmt.Errorf("scope: tenant column required for %s", kind)
	}
	r.filters[kind] = f
	return nil
}

// MustRegister is Register for startup wiring that cannot proceed on
// failure.
func (r *Registry) MustRegister(kind string, f Filter) {
	if err := r.Register(kind, f); err != nil {
		panic(err)
	}
}

// Kinds reports the registered entity kinds.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.filters))
	for k := range r.filters {
		kinds = append(kinds, k)
	}
	return kinds
}

// Clause renders the mandatory WHERE fragment for an entity kind using
// the context's resolved tenant. Placeholder numbering starts at argPos.
// The tenant is read here, at query execution time. A missing tenant
// fails closed with ErrNoTenantInScope.
func (r *Registry) Clause(ctx context.Context, kind string, argPos int) (string, []any, error) {
	f, ok := r.filters[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnregisteredEntity, kind)
	}

	tenantID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return "", nil, ErrNoTenantInScope
	}

	clause := fmt.Sprintf("%s = $%d", f.TenantColumn, argPos)
	if f.SoftDeleteColumn != "" {
		clause += fmt.Sprintf(" AND %s IS NULL", f.SoftDeleteColumn)
	}

	return clause, []any{tenantID}, nil
}
