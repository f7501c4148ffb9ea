package scope

import (
	"context"

	"github.com/tenantward/tenantward/pkg/tenant"
)

// TenantOwned is implemented by every persisted entity that carries a
// tenant id. The tenant id is assigned once at creation and never altered
// afterward.
type TenantOwned interface {
	OwnerTenantID() string
	SetOwnerTenantID(id string)
}

// SoftDeletable is implemented by entities that are hidden rather than
// removed.
type SoftDeletable interface {
	IsDeleted() bool
}

// Predicate is a composable record filter. It receives the context at
// evaluation time so tenant checks always see the current request's
// resolution, not a value captured at construction.
type Predicate[T any] func(ctx context.Context, rec T) bool

// And combines predicates; all must pass.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(ctx context.Context, rec T) bool {
		for _, p := range preds {
			if !p(ctx, rec) {
				return false
			}
		}
		return true
	}
}

// ForTenant matches records owned by the context's resolved tenant.
// With no resolved tenant it matches nothing: reads fail closed.
func ForTenant[T TenantOwned]() Predicate[T] {
	return func(ctx context.Context, rec T) bool {
		id, ok := tenant.IDFromContext(ctx)
		if !ok {
			return false
		}
		return rec.OwnerTenantID() == id
	}
}

// NotDeleted matches records that are not soft-deleted.
func NotDeleted[T SoftDeletable]() Predicate[T] {
	return func(ctx context.Context, rec T) bool {
		return !rec.IsDeleted()
	}
}

// Visible is the standard filter for tenant-owned, soft-deletable
// entities: current tenant AND not deleted.
func Visible[T interface {
	TenantOwned
	SoftDeletable
}]() Predicate[T] {
	return And(ForTenant[T](), NotDeleted[T]())
}
