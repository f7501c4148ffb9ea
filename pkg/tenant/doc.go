// Package tenant resolves and validates the tenant a request belongs to.
//
// Every inbound request is assigned exactly one tenant identifier through
// a fixed precedence chain:
//
//  1. Manual override set on the resolver (tooling and tests)
//  2. The resolution already cached for this request
//  3. The tenant claim of the authenticated JWT
//  4. A designated HTTP header
//  5. The configured default tenant
//
// Resolution never fails: candidates that are missing or malformed are
// skipped and the chain falls through to the default tenant. Accepted
// values are trimmed and lowercased before use, and the result is cached
// in per-request state so repeated resolution within one request is
// idempotent.
//
// Validation runs once per request at the middleware boundary. The default
// tenant is always considered valid; any other identifier must exist in
// the Store and be active. Not-found and inactive tenants are reported to
// operators as distinct conditions but rendered to clients identically, so
// tenant existence never leaks.
//
// # Usage
//
//	resolver := tenant.NewResolver(
//		tenant.WithDefaultTenant("default"),
//		tenant.WithClaimLookup(jwt.TenantClaimFromContext),
//	)
//	validator := tenant.NewValidator(store,
//		tenant.WithExcludedPaths("/health", "/auth"),
//	)
//
//	r.Use(tenant.Middleware(resolver, validator))
//
// Handlers read the resolved tenant with tenant.IDFromContext. The scope
// package consumes the same context to filter queries and stamp new rows.
package tenant
