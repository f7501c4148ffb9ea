package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to start or serve.
	ErrStart = errors.New("httpserver: failed to start")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("httpserver: failed to shut down gracefully")
)
