package scope

import "errors"

var (
	// ErrAmbiguousTenant is returned when a tenant-owned record is about
	// to be persisted with no resolvable tenant in context. Fatal: the
	// write must be aborted, never silently defaulted.
	ErrAmbiguousTenant = errors.New("scope: no resolvable tenant for new record")

	// ErrNoTenantInScope is returned when a scoped read runs with no
	// resolved tenant in context. Queries fail closed rather than
	// returning another tenant's rows.
	ErrNoTenantInScope = errors.New("scope: no resolved tenant for scoped query")

	// ErrUnregisteredEntity is returned when a query is attempted against
	// an entity kind the registry does not know.
	ErrUnregisteredEntity = errors.New("scope: entity kind not registered")

	// ErrAlreadyRegistered is returned when an entity kind is registered
	// twice.
	ErrAlreadyRegistered = errors.New("scope: entity kind already registered")
)
