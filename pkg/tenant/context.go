package tenant

import (
	"context"
	"log/slog"
	"sync"
)

// Source records where a tenant identifier came from.
type Source int

const (
	SourceUnknown Source = iota
	SourceOverride
	SourceCached
	SourceClaim
	SourceHeader
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceCached:
		return "cached"
	case SourceClaim:
		return "claim"
	case SourceHeader:
		return "header"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving a request's tenant: the
// normalized identifier plus its provenance for diagnostics.
type Resolution struct {
	TenantID string
	Source   Source
}

type contextKey struct{}

// state is the per-request resolution cache. It is owned by exactly one
// request; the mutex only guards against in-request concurrency such as
// fan-out goroutines sharing the request context.
type state struct {
	mu  sync.Mutex
	res Resolution
	set bool
}

func (s *state) get() (Resolution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res, s.set
}

// put caches the first resolution; later calls are no-ops so the resolved
// value cannot change for the remainder of the request.
func (s *state) put(res Resolution) Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		s.res = res
		s.set = true
	}
	return s.res
}

// NewContext installs fresh resolution state. The middleware calls this at
// the start of every request; state is never shared across requests.
func NewContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, &state{})
}

// Seed installs resolution state pre-populated with the given identifier,
// marked as cached provenance. Intended for background jobs and tooling
// that operate on behalf of a known tenant outside the HTTP pipeline.
func Seed(ctx context.Context, tenantID string) context.Context {
	s := &state{}
	s.put(Resolution{TenantID: tenantID, Source: SourceCached})
	return context.WithValue(ctx, contextKey{}, s)
}

func stateFromContext(ctx context.Context) (*state, bool) {
	s, ok := ctx.Value(contextKey{}).(*state)
	return s, ok
}

// ResolutionFromContext returns the cached resolution for this request.
func ResolutionFromContext(ctx context.Context) (Resolution, bool) {
	s, ok := stateFromContext(ctx)
	if !ok {
		return Resolution{}, false
	}
	return s.get()
}

// IDFromContext returns the resolved tenant identifier for this request.
func IDFromContext(ctx context.Context) (string, bool) {
	res, ok := ResolutionFromContext(ctx)
	if !ok || res.TenantID == "" {
		return "", false
	}
	return res.TenantID, true
}

// MustIDFromContext panics when no tenant is resolved. Use only in code
// paths that run strictly behind the middleware.
func MustIDFromContext(ctx context.Context) string {
	id, ok := IDFromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor enriches log records with the resolved tenant id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
