package tenant

import (
	"log/slog"
	"net/http"
	"time"
)

// Config carries the tenant pipeline settings loaded from the
// environment.
type Config struct {
	DefaultTenantID string        `env:"TENANT_DEFAULT_ID" envDefault:"default"`         // DefaultTenantID is the universal fallback tenant.
	HeaderName      string        `env:"TENANT_HEADER_NAME" envDefault:"X-Tenant-ID"`    // HeaderName is the request header carrying the tenant id.
	ExcludedPaths   []string      `env:"TENANT_EXCLUDED_PATHS" envDefault:"/health,/auth,/tenants"` // ExcludedPaths skip validation (prefix match).
	EchoHeader      bool          `env:"TENANT_ECHO_RESPONSE_HEADER" envDefault:"false"` // EchoHeader mirrors the resolved tenant into the response.
	CacheTTL        time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`               // CacheTTL bounds staleness of cached tenant records.
	CacheSize       int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`            // CacheSize caps the in-memory tenant cache.
}

// NewResolverFromConfig builds a resolver from environment-driven config.
func NewResolverFromConfig(cfg Config, opts ...ResolverOption) *Resolver {
	base := []ResolverOption{
		WithDefaultTenant(cfg.DefaultTenantID),
		WithHeader(cfg.HeaderName),
	}
	return NewResolver(append(base, opts...)...)
}

// NewValidatorFromConfig builds a validator from environment-driven
// config.
func NewValidatorFromConfig(store Store, cfg Config, log *slog.Logger) *Validator {
	return NewValidator(store,
		WithTrustedDefault(cfg.DefaultTenantID),
		WithExcludedPaths(cfg.ExcludedPaths...),
		WithLogger(log),
	)
}

// MiddlewareFromConfig builds the pipeline stage from environment-driven
// config.
func MiddlewareFromConfig(resolver *Resolver, validator *Validator, cfg Config, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if cfg.EchoHeader {
		opts = append([]MiddlewareOption{WithEchoHeader(cfg.HeaderName)}, opts...)
	}
	return Middleware(resolver, validator, opts...)
}
