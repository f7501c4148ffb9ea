// Package jwt implements HMAC-SHA256 signed tokens for API authentication.
//
// Tokens carry the registered claims from RFC 7519 plus a tenant claim
// ("tid") so that downstream tenant resolution can trust the tenant an
// access token was issued for. The implementation is deliberately small:
// one signing algorithm, constant-time signature verification, and typed
// claims.
//
// # Usage
//
//	svc, err := jwt.NewService([]byte(cfg.SigningKey))
//	token, err := svc.Issue(jwt.Claims{
//		Subject:  user.ID.String(),
//		TenantID: "acme",
//	}, 15*time.Minute)
//
//	var claims jwt.Claims
//	err = svc.Parse(token, &claims)
//
// The Middleware function validates bearer tokens and stores the parsed
// claims in the request context for handlers and the tenant resolver.
package jwt
