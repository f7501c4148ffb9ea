package config

import "errors"

var (
	// ErrNilTarget is returned when Load is called with a nil pointer.
	ErrNilTarget = errors.New("config: target must be a non-nil pointer")

	// ErrParse wraps failures from parsing environment variables into the
	// target struct, including missing required values.
	ErrParse = errors.New("config: failed to parse environment")
)
