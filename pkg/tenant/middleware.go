package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ErrorHandler renders a validation failure to the client.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, res Resolution, err error)

type middlewareConfig struct {
	echoHeader   string
	errorHandler ErrorHandler
}

// MiddlewareOption configures the request pipeline stage.
type MiddlewareOption func(*middlewareConfig)

// WithEchoHeader echoes the resolved tenant in the named response header.
// An empty name disables the echo.
func WithEchoHeader(name string) MiddlewareOption {
	return func(c *middlewareConfig) { c.echoHeader = name }
}

// WithErrorHandler replaces the default JSON error response.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Middleware is the request pipeline stage: it installs fresh resolution
// state, resolves the tenant once, validates it unless the path is
// excluded, and publishes the result for the remainder of the request.
// Rejected requests are short-circuited; no downstream handler runs.
func Middleware(resolver *Resolver, validator *Validator, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(NewContext(r.Context()))

			res := resolver.Resolve(r)

			if !validator.Excluded(r.URL.Path) {
				if err := validator.Validate(r.Context(), res); err != nil {
					cfg.errorHandler(w, r, res, err)
					return
				}
			}

			if cfg.echoHeader != "" {
				w.Header().Set(cfg.echoHeader, res.TenantID)
			}

			next.ServeHTTP(w, r)
		})
	}
}

type errorBody struct {
	Error struct {
		Code      string    `json:"code"`
		Message   string    `json:"message"`
		TenantID  string    `json:"tenant_id,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"error"`
}

// defaultErrorHandler renders not-found and inactive identically so
// tenant existence is never leaked to clients.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, res Resolution, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "internal server error"

	if errors.Is(err, ErrTenantNotFound) || errors.Is(err, ErrTenantInactive) {
		status = http.StatusNotFound
		code = "tenant_not_found"
		message = "tenant not found"
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	body.Error.TenantID = res.TenantID
	body.Error.Timestamp = time.Now().UTC()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
