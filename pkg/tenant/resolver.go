package tenant

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

const (
	// DefaultTenantID is the universal fallback when no source yields a
	// usable identifier.
	DefaultTenantID = "default"

	// DefaultHeaderName is the request header consulted by the header
	// source.
	DefaultHeaderName = "X-Tenant-ID"

	// MaxIDLength bounds identifiers for DNS compatibility and to avoid
	// abuse via oversized values.
	MaxIDLength = 63
)

// Identifiers are lowercase slugs: alphanumeric start, hyphens allowed.
var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// NormalizeID trims and lowercases a raw candidate and checks it against
// the identifier format. Returns ErrInvalidIdentifier for unusable values.
func NormalizeID(raw string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" || len(id) > MaxIDLength || !idPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}
	return id, nil
}

// ClaimLookup reads the tenant claim of the authenticated principal from
// the request context. The boolean reports whether a claim was present.
type ClaimLookup func(ctx context.Context) (string, bool)

// Resolver produces one tenant identifier per request using a fixed
// precedence chain: override, cached, claim, header, default. Resolution
// never fails; unusable candidates fall through to the next source.
type Resolver struct {
	mu       sync.RWMutex
	override string

	headerName string
	defaultID  string
	claim      ClaimLookup
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDefaultTenant sets the fallback tenant identifier.
func WithDefaultTenant(id string) ResolverOption {
	return func(r *Resolver) {
		if id != "" {
			r.defaultID = id
		}
	}
}

// WithHeader sets the request header consulted by the header source.
func WithHeader(name string) ResolverOption {
	return func(r *Resolver) {
		if name != "" {
			r.headerName = name
		}
	}
}

// WithClaimLookup wires the identity-token claim source. Without it the
// claim source is skipped entirely.
func WithClaimLookup(fn ClaimLookup) ResolverOption {
	return func(r *Resolver) { r.claim = fn }
}

// NewResolver creates a resolver with the default tenant and header name
// unless overridden by options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		headerName: DefaultHeaderName,
		defaultID:  DefaultTenantID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetOverride forces all subsequent resolution to the given tenant for
// the life of this resolver. Intended for tooling and tests. The value
// must pass format validation.
func (r *Resolver) SetOverride(id string) error {
	normalized, err := NormalizeID(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.override = normalized
	r.mu.Unlock()
	return nil
}

// ClearOverride removes a previously set override.
func (r *Resolver) ClearOverride() {
	r.mu.Lock()
	r.override = ""
	r.mu.Unlock()
}

// HeaderName reports the header consulted by the header source.
func (r *Resolver) HeaderName() string { return r.headerName }

// DefaultTenant reports the configured fallback identifier.
func (r *Resolver) DefaultTenant() string { return r.defaultID }

// Resolve determines the tenant for an HTTP request. The result is cached
// in the request's resolution state, so repeated calls within one request
// return the identical value and provenance.
func (r *Resolver) Resolve(req *http.Request) Resolution {
	return r.resolve(req.Context(), func() string {
		return req.Header.Get(r.headerName)
	})
}

// ResolveContext determines the tenant outside an HTTP request, e.g. in
// background jobs. The header source does not apply.
func (r *Resolver) ResolveContext(ctx context.Context) Resolution {
	return r.resolve(ctx, nil)
}

func (r *Resolver) resolve(ctx context.Context, header func() string) Resolution {
	r.mu.RLock()
	override := r.override
	r.mu.RUnlock()

	// The override is consulted on every call so it also wins over a
	// previously cached resolution.
	if override != "" {
		return Resolution{TenantID: override, Source: SourceOverride}
	}

	st, hasState := stateFromContext(ctx)
	if hasState {
		if res, ok := st.get(); ok {
			return res
		}
	}

	res := Resolution{TenantID: r.defaultID, Source: SourceDefault}

	if r.claim != nil {
		if raw, ok := r.claim(ctx); ok {
			if id, err := NormalizeID(raw); err == nil {
				res = Resolution{TenantID: id, Source: SourceClaim}
			}
		}
	}

	if res.Source == SourceDefault && header != nil {
		if raw := header(); raw != "" {
			if id, err := NormalizeID(raw); err == nil {
				res = Resolution{TenantID: id, Source: SourceHeader}
			}
		}
	}

	// Cache whatever was resolved; the value must not change for the
	// remainder of the request even if claim or header were to change.
	if hasState {
		res = st.put(res)
	}

	return res
}
