package jwt

import (
	"net/http"
	"strings"
)

// MiddlewareConfig configures bearer-token validation.
type MiddlewareConfig struct {
	Service *Service

	// Optional lets unauthenticated requests through without claims in
	// context. Invalid tokens are still rejected.
	Optional bool

	// Skip bypasses validation for matching requests (health checks,
	// login endpoints).
	Skip func(r *http.Request) bool
}

// Middleware validates "Authorization: Bearer" tokens and stores the
// parsed claims in the request context.
func Middleware(service *Service) func(http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Service: service})
}

// MiddlewareWithConfig validates bearer tokens per the supplied config.
func MiddlewareWithConfig(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				if cfg.Optional {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			var claims Claims
			if err := cfg.Service.Parse(token, &claims); err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := WithToken(r.Context(), token)
			ctx = WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(auth, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
