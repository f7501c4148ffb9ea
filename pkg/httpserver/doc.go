// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, and a combined liveness/readiness handler.
package httpserver
