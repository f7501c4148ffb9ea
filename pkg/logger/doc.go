// Package logger builds configured slog.Logger instances for the API kit.
//
// The factory wraps the chosen slog handler with a decorator that pulls
// request-scoped attributes (request id, tenant id) out of the context on
// every log call, so handlers and repositories never thread identifiers
// into log lines by hand.
//
// # Usage
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
//	slog.SetDefault(log)
package logger
