package jwt

import "errors"

var (
	// ErrMissingSigningKey is returned when a service is created without a key.
	ErrMissingSigningKey = errors.New("jwt: signing key is required")

	// ErrInvalidToken is returned for malformed or missing tokens.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrUnexpectedAlgorithm is returned when the token header declares an
	// algorithm other than HS256. Rejecting these prevents algorithm
	// confusion attacks.
	ErrUnexpectedAlgorithm = errors.New("jwt: unexpected signing algorithm")

	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrTokenNotYetValid is returned when the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("jwt: token not yet valid")
)
