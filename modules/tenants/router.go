package tenants

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tenantward/tenantward/core"
	"github.com/tenantward/tenantward/pkg/logger"
	"github.com/tenantward/tenantward/pkg/tenant"
)

type createRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(t tenant.Tenant) tenantResponse {
	return tenantResponse{ID: t.ID, Name: t.Name, Active: t.Active, CreatedAt: t.CreatedAt}
}

// InvalidateFunc drops a tenant from lookup caches after a state change.
type InvalidateFunc func(ctx context.Context, id string)

// RouterOption configures the admin router.
type RouterOption func(*handler)

// WithCacheInvalidation registers a hook called after a tenant changes
// state. The validator reads tenants through cache decorators; without
// invalidation a deactivated tenant keeps passing validation until the
// cache TTL expires.
func WithCacheInvalidation(fn InvalidateFunc) RouterOption {
	return func(h *handler) {
		if fn != nil {
			h.invalidate = fn
		}
	}
}

// NewRouter returns the tenant admin router. Mount it on a path that is
// excluded from tenant enforcement; these endpoints operate across
// tenants by definition.
func NewRouter(repo Repository, log *slog.Logger, opts ...RouterOption) http.Handler {
	h := &handler{
		repo:       repo,
		log:        log,
		invalidate: func(context.Context, string) {},
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.deactivate)
	return r
}

type handler struct {
	repo       Repository
	log        *slog.Logger
	invalidate InvalidateFunc
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list tenants", logger.Error(err))
		core.InternalError(w)
		return
	}

	out := make([]tenantResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toResponse(t))
	}
	core.JSON(w, http.StatusOK, out)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := core.Decode(r, &req); err != nil {
		core.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	id, err := tenant.NormalizeID(req.ID)
	if err != nil {
		core.Error(w, http.StatusUnprocessableEntity, "invalid_tenant_id", err.Error())
		return
	}
	name := req.Name
	if name == "" {
		name = id
	}

	created, err := h.repo.Create(r.Context(), tenant.Tenant{ID: id, Name: name, Active: true})
	if err != nil {
		if errors.Is(err, ErrTenantExists) {
			core.Error(w, http.StatusConflict, "tenant_exists", "tenant already exists")
			return
		}
		h.log.ErrorContext(r.Context(), "create tenant", logger.TenantID(id), logger.Error(err))
		core.InternalError(w)
		return
	}
	core.JSON(w, http.StatusCreated, toResponse(*created))
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			core.Error(w, http.StatusNotFound, "tenant_not_found", "tenant not found")
			return
		}
		h.log.ErrorContext(r.Context(), "get tenant", logger.TenantID(id), logger.Error(err))
		core.InternalError(w)
		return
	}
	core.JSON(w, http.StatusOK, toResponse(*t))
}

// deactivate marks a tenant inactive instead of deleting the row so its
// data and audit trail survive.
func (h *handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.SetActive(r.Context(), id, false); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			core.Error(w, http.StatusNotFound, "tenant_not_found", "tenant not found")
			return
		}
		h.log.ErrorContext(r.Context(), "deactivate tenant", logger.TenantID(id), logger.Error(err))
		core.InternalError(w)
		return
	}

	// Drop stale cache entries so the deactivation takes effect on the
	// next request, not after the cache TTL.
	h.invalidate(r.Context(), id)

	w.WriteHeader(http.StatusNoContent)
}
