package tenants_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/modules/tenants"
	"github.com/tenantward/tenantward/pkg/tenant"
)

func newTestRouter(t *testing.T) (http.Handler, *tenants.MemoryRepository) {
	t.Helper()
	repo := tenants.NewMemoryRepository()
	return tenants.NewRouter(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestRouterCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates tenant with normalized id", func(t *testing.T) {
		t.Parallel()
		router, repo := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"  ACME ","name":"Acme Corp"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		created, err := repo.GetByID(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", created.Name)
		assert.True(t, created.Active)
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"bad id!"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("conflict on duplicate", func(t *testing.T) {
		t.Parallel()
		router, repo := newTestRouter(t)
		_, err := repo.Create(context.Background(), tenant.Tenant{ID: "acme", Name: "Acme", Active: true})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"acme"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRouterGet(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)
	_, err := repo.Create(context.Background(), tenant.Tenant{ID: "acme", Name: "Acme", Active: true})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/acme", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data struct {
				ID     string `json:"id"`
				Active bool   `json:"active"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "acme", body.Data.ID)
		assert.True(t, body.Data.Active)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/ghost", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouterDeactivate(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)
	_, err := repo.Create(context.Background(), tenant.Tenant{ID: "acme", Name: "Acme", Active: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/acme", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	got, err := repo.GetByID(context.Background(), "acme")
	require.NoError(t, err)
	assert.False(t, got.Active, "delete deactivates instead of removing the row")
}

func TestRouterDeactivateInvalidatesCache(t *testing.T) {
	t.Parallel()

	repo := tenants.NewMemoryRepository()
	_, err := repo.Create(context.Background(), tenant.Tenant{ID: "acme", Name: "Acme", Active: true})
	require.NoError(t, err)

	// Mirror the production wiring: the validator reads through a cache
	// decorator, the admin router deactivates against the raw repository.
	cached := tenant.NewCachedStore(repo, time.Hour, 10)
	validator := tenant.NewValidator(cached)
	router := tenants.NewRouter(repo, slog.New(slog.NewTextHandler(io.Discard, nil)),
		tenants.WithCacheInvalidation(func(_ context.Context, id string) {
			tenant.Invalidate(cached, id)
		}))

	res := tenant.Resolution{TenantID: "acme", Source: tenant.SourceHeader}
	require.NoError(t, validator.Validate(context.Background(), res), "warms the cache")

	req := httptest.NewRequest(http.MethodDelete, "/acme", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	err = validator.Validate(context.Background(), res)
	require.ErrorIs(t, err, tenant.ErrTenantInactive,
		"deactivation takes effect immediately, not after the cache TTL")
}

func TestRouterList(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)
	for _, id := range []string{"acme", "globex"} {
		_, err := repo.Create(context.Background(), tenant.Tenant{ID: id, Name: id, Active: true})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}
