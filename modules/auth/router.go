package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tenantward/tenantward/core"
	"github.com/tenantward/tenantward/pkg/logger"
)

type loginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewRouter returns the auth router. Mount it on a path excluded from
// tenant enforcement.
func NewRouter(svc *Service, log *slog.Logger) http.Handler {
	h := &handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Post("/login", h.login)
	r.Post("/refresh", h.refresh)
	return r
}

type handler struct {
	svc *Service
	log *slog.Logger
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := core.Decode(r, &req); err != nil {
		core.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.TenantID, req.Email, req.Password)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
	})
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := core.Decode(r, &req); err != nil {
		core.Error(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	token, err := h.svc.Refresh(r.Context(), req.Token)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
	})
}

func (h *handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrInvalidCredentials) {
		core.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}
	h.log.ErrorContext(r.Context(), "auth request failed", logger.Error(err))
	core.InternalError(w)
}
