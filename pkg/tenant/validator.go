package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validator confirms a resolved tenant refers to a real, active tenant
// before tenant-scoped work proceeds. Validation runs at most once per
// request, at the pipeline boundary; downstream code trusts the already
// validated context.
type Validator struct {
	store     Store
	defaultID string
	excluded  []string
	log       *slog.Logger
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithExcludedPaths sets path prefixes that skip validation, such as
// health checks, auth endpoints, and docs.
func WithExcludedPaths(paths ...string) ValidatorOption {
	return func(v *Validator) { v.excluded = append(v.excluded, paths...) }
}

// WithTrustedDefault sets the tenant identifier that is always considered
// valid without a store lookup.
func WithTrustedDefault(id string) ValidatorOption {
	return func(v *Validator) {
		if id != "" {
			v.defaultID = id
		}
	}
}

// WithLogger sets the logger used for validation failures.
func WithLogger(log *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if log != nil {
			v.log = log
		}
	}
}

// NewValidator creates a validator backed by the given tenant store.
func NewValidator(store Store, opts ...ValidatorOption) *Validator {
	v := &Validator{
		store:     store,
		defaultID: DefaultTenantID,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Excluded reports whether the request path skips validation.
func (v *Validator) Excluded(path string) bool {
	for _, prefix := range v.excluded {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Validate checks that the resolution refers to an existing, active
// tenant. The default tenant passes without a store lookup. Not-found and
// inactive are distinct errors; callers must render them identically to
// clients.
func (v *Validator) Validate(ctx context.Context, res Resolution) error {
	if res.TenantID == "" {
		return ErrNoTenantInContext
	}
	if res.TenantID == v.defaultID {
		return nil
	}

	t, err := v.store.GetByID(ctx, res.TenantID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			v.log.WarnContext(ctx, "unknown tenant",
				slog.String("tenant_id", res.TenantID),
				slog.String("source", res.Source.String()))
			return fmt.Errorf("%w: %s", ErrTenantNotFound, res.TenantID)
		}
		return fmt.Errorf("tenant lookup failed: %w", err)
	}

	if !t.Active {
		v.log.WarnContext(ctx, "inactive tenant rejected",
			slog.String("tenant_id", res.TenantID),
			slog.String("source", res.Source.String()))
		return fmt.Errorf("%w: %s", ErrTenantInactive, res.TenantID)
	}

	return nil
}
