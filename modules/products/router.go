package products

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tenantward/tenantward/core"
	"github.com/tenantward/tenantward/pkg/logger"
	"github.com/tenantward/tenantward/pkg/scope"
)

type productRequest struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"price_cents"`
	Active     *bool  `json:"active,omitempty"`
}

type productResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	PriceCents int64     `json:"price_cents"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// The owning tenant is deliberately absent from responses; clients only
// ever see their own slice, so echoing it back adds nothing.
func toResponse(p Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		PriceCents: p.PriceCents,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewRouter returns the product catalog router. Mount it behind the
// tenant middleware; handlers assume a resolved tenant in context.
func NewRouter(commands *Commands, queries *Queries, log *slog.Logger) http.Handler {
	h := &handler{commands: commands, queries: queries, log: log}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

type handler struct {
	commands *Commands
	queries  *Queries
	log      *slog.Logger
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := core.Decode(r, &req); err != nil {
		core.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	p, err := h.commands.CreateProduct(r.Context(), CreateProductCommand{
		Name:       req.Name,
		SKU:        req.SKU,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, toResponse(*p))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	q := ListProductsQuery{ActiveOnly: r.URL.Query().Get("active") == "true"}
	if v := r.URL.Query().Get("limit"); v != "" {
		q.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		q.Offset, _ = strconv.Atoi(v)
	}

	items, err := h.queries.ListProducts(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toResponse(p))
	}
	core.JSON(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}

	p, err := h.queries.GetProduct(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, toResponse(*p))
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}

	var req productRequest
	if err := core.Decode(r, &req); err != nil {
		core.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	p, err := h.commands.UpdateProduct(r.Context(), UpdateProductCommand{
		ID:         id,
		Name:       req.Name,
		SKU:        req.SKU,
		PriceCents: req.PriceCents,
		Active:     active,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, toResponse(*p))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}

	if err := h.commands.DeleteProduct(r.Context(), DeleteProductCommand{ID: id}); err != nil {
		h.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		core.Error(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, ErrProductNotFound):
		core.Error(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, ErrSKUExists):
		core.Error(w, http.StatusConflict, "sku_exists", "sku already exists")
	case errors.Is(err, scope.ErrNoTenantInScope), errors.Is(err, scope.ErrAmbiguousTenant):
		// Reachable only when the router is mounted outside the tenant
		// middleware; treated as a wiring bug, not a client error.
		h.log.ErrorContext(r.Context(), "request reached products without a tenant", logger.Error(err))
		core.InternalError(w)
	default:
		h.log.ErrorContext(r.Context(), "product request failed", logger.Error(err))
		core.InternalError(w)
	}
}
