package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/pkg/tenant"
)

func claimLookup(value string) tenant.ClaimLookup {
	return func(ctx context.Context) (string, bool) {
		return value, value != ""
	}
}

func newRequest(t *testing.T, header string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req = req.WithContext(tenant.NewContext(req.Context()))
	if header != "" {
		req.Header.Set(tenant.DefaultHeaderName, header)
	}
	return req
}

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	t.Run("trims and lowercases", func(t *testing.T) {
		t.Parallel()

		id, err := tenant.NormalizeID("  Acme ")
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("rejects disallowed characters", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "ac me", "acme!", "-acme", "a/b", "ü"} {
			_, err := tenant.NormalizeID(raw)
			assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier, "value %q", raw)
		}
	})

	t.Run("rejects oversized values", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, tenant.MaxIDLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := tenant.NormalizeID(string(long))
		require.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})
}

func TestResolverPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("override wins over everything", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver(tenant.WithClaimLookup(claimLookup("claimed")))
		require.NoError(t, r.SetOverride("Forced"))

		res := r.Resolve(newRequest(t, "headered"))
		assert.Equal(t, "forced", res.TenantID)
		assert.Equal(t, tenant.SourceOverride, res.Source)
	})

	t.Run("claim wins over header", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver(tenant.WithClaimLookup(claimLookup("claimed")))
		res := r.Resolve(newRequest(t, "headered"))
		assert.Equal(t, "claimed", res.TenantID)
		assert.Equal(t, tenant.SourceClaim, res.Source)
	})

	t.Run("header wins over default", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		res := r.Resolve(newRequest(t, "Acme"))
		assert.Equal(t, "acme", res.TenantID)
		assert.Equal(t, tenant.SourceHeader, res.Source)
	})

	t.Run("default when no source yields a value", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		res := r.Resolve(newRequest(t, ""))
		assert.Equal(t, tenant.DefaultTenantID, res.TenantID)
		assert.Equal(t, tenant.SourceDefault, res.Source)
	})

	t.Run("malformed header falls through to default", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		res := r.Resolve(newRequest(t, "no spaces allowed"))
		assert.Equal(t, tenant.DefaultTenantID, res.TenantID)
		assert.Equal(t, tenant.SourceDefault, res.Source)
	})

	t.Run("malformed claim falls through to header", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver(tenant.WithClaimLookup(claimLookup("bad claim!")))
		res := r.Resolve(newRequest(t, "acme"))
		assert.Equal(t, "acme", res.TenantID)
		assert.Equal(t, tenant.SourceHeader, res.Source)
	})

	t.Run("invalid override rejected", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		require.ErrorIs(t, r.SetOverride("not valid!"), tenant.ErrInvalidIdentifier)
	})

	t.Run("cleared override falls back to chain", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		require.NoError(t, r.SetOverride("forced"))
		r.ClearOverride()

		res := r.Resolve(newRequest(t, "acme"))
		assert.Equal(t, "acme", res.TenantID)
	})
}

func TestResolverIdempotence(t *testing.T) {
	t.Parallel()

	t.Run("second resolve returns identical value and provenance", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		req := newRequest(t, "acme")

		first := r.Resolve(req)
		require.Equal(t, "acme", first.TenantID)
		require.Equal(t, tenant.SourceHeader, first.Source)

		// Mutating the header must not change the cached resolution.
		req.Header.Set(tenant.DefaultHeaderName, "other")
		second := r.Resolve(req)
		assert.Equal(t, first, second)
	})

	t.Run("default resolution is cached too", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		req := newRequest(t, "")

		first := r.Resolve(req)
		require.Equal(t, tenant.SourceDefault, first.Source)

		req.Header.Set(tenant.DefaultHeaderName, "late")
		second := r.Resolve(req)
		assert.Equal(t, first, second)
	})

	t.Run("requests do not share state", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()

		resA := r.Resolve(newRequest(t, "alpha"))
		resB := r.Resolve(newRequest(t, "beta"))
		assert.Equal(t, "alpha", resA.TenantID)
		assert.Equal(t, "beta", resB.TenantID)
	})
}

func TestResolveContext(t *testing.T) {
	t.Parallel()

	t.Run("background context resolves to default", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		res := r.ResolveContext(context.Background())
		assert.Equal(t, tenant.DefaultTenantID, res.TenantID)
		assert.Equal(t, tenant.SourceDefault, res.Source)
	})

	t.Run("seeded context returns cached resolution", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver()
		ctx := tenant.Seed(context.Background(), "acme")

		res := r.ResolveContext(ctx)
		assert.Equal(t, "acme", res.TenantID)
		assert.Equal(t, tenant.SourceCached, res.Source)
	})
}
