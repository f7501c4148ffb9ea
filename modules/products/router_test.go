package products_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/modules/products"
	"github.com/tenantward/tenantward/pkg/tenant"
)

// seedTenant stands in for the tenant middleware in router tests.
func seedTenant(id string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(tenant.Seed(r.Context(), id)))
	})
}

func newTestServer(t *testing.T, tenantID string) (http.Handler, *products.MemoryRepository) {
	t.Helper()
	repo := products.NewMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := products.NewRouter(products.NewCommands(repo, log), products.NewQueries(repo), log)
	return seedTenant(tenantID, router), repo
}

func TestRouterCreate(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t, "acme")

		req := httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"name":"Widget","sku":"W-1","price_cents":1999}`))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var body struct {
			Data struct {
				ID     string `json:"id"`
				SKU    string `json:"sku"`
				Active bool   `json:"active"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Data.ID)
		assert.Equal(t, "W-1", body.Data.SKU)
		assert.True(t, body.Data.Active)
		assert.NotContains(t, w.Body.String(), "tenant_id", "tenant is never echoed to clients")
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t, "acme")

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"sku":"W-1"}`))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		srv, _ := newTestServer(t, "acme")

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouterCrossTenant(t *testing.T) {
	t.Parallel()

	repo := products.NewMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := products.NewRouter(products.NewCommands(repo, log), products.NewQueries(repo), log)

	// Create as acme, then fetch the same id as globex.
	create := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"name":"Widget","sku":"W-1","price_cents":100}`))
	w := httptest.NewRecorder()
	seedTenant("acme", router).ServeHTTP(w, create)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	get := httptest.NewRequest(http.MethodGet, "/"+created.Data.ID, nil)
	w = httptest.NewRecorder()
	seedTenant("globex", router).ServeHTTP(w, get)
	assert.Equal(t, http.StatusNotFound, w.Code, "foreign rows look like missing rows")

	get = httptest.NewRequest(http.MethodGet, "/"+created.Data.ID, nil)
	w = httptest.NewRecorder()
	seedTenant("acme", router).ServeHTTP(w, get)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterDelete(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "acme")

	create := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"name":"Widget","sku":"W-1","price_cents":100}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, create)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	del := httptest.NewRequest(http.MethodDelete, "/"+created.Data.ID, nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, del)
	require.Equal(t, http.StatusNoContent, w.Code)

	get := httptest.NewRequest(http.MethodGet, "/"+created.Data.ID, nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, get)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterInvalidID(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, "acme")

	req := httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
