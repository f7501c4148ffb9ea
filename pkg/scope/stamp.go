package scope

import (
	"context"

	"github.com/tenantward/tenantward/pkg/tenant"
)

// Stamp assigns the context's resolved tenant to a new record before it
// is persisted.
//
// An already-set tenant id is never overwritten; upstream code must not
// supply one, this guard only limits the damage if it does. When no
// tenant is resolvable the record must not be persisted: callers receive
// ErrAmbiguousTenant and abort the write.
func Stamp(ctx context.Context, rec TenantOwned) error {
	if rec.OwnerTenantID() != "" {
		return nil
	}

	id, ok := tenant.IDFromContext(ctx)
	if !ok || id == "" {
		return ErrAmbiguousTenant
	}

	rec.SetOwnerTenantID(id)
	return nil
}
