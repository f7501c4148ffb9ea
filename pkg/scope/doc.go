// Package scope enforces tenant isolation on reads and writes of
// tenant-owned records.
//
// Call sites never filter by tenant manually. Repositories obtain their
// mandatory WHERE fragment from a Registry that maps each tenant-owned
// entity kind to its filter columns, and stamp new records through Stamp
// before persisting them. Both operations read the tenant from the
// request context at execution time, so a predicate built at startup
// always reflects the tenant of the request actually running the query.
//
// The tenant filter and the soft-delete filter are independent
// predicates combined with AND; a record hidden by tenant mismatch is
// indistinguishable from one hidden by soft delete.
//
// # Usage
//
//	registry := scope.NewRegistry()
//	registry.MustRegister("products", scope.Filter{
//		TenantColumn:     "tenant_id",
//		SoftDeleteColumn: "deleted_at",
//	})
//
//	clause, args, err := registry.Clause(ctx, "products", 1)
//	// clause: "tenant_id = $1 AND deleted_at IS NULL"
//
//	if err := scope.Stamp(ctx, product); err != nil {
//		// no resolvable tenant: the write must not happen
//	}
//
// Writes with no resolvable tenant fail with ErrAmbiguousTenant; this is
// a programming or configuration error, never a user-facing condition.
package scope
