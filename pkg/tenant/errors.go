package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when the resolved identifier does not
	// correspond to any tenant record.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantInactive is returned when the tenant exists but is
	// disabled. Clients receive the same response as for ErrTenantNotFound
	// so existence is not leaked; operators see the distinction in logs.
	ErrTenantInactive = errors.New("tenant is inactive")

	// ErrInvalidIdentifier is returned when a tenant identifier fails
	// format validation.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when request processing requires a
	// resolved tenant and none is present.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
