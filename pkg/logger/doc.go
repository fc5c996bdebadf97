// Package logger builds the site's diagnostic event sink on log/slog.
//
// Every recovered fault in the resolution subsystem is observable even
// though visitors never see it, so the sink matters: it is a JSON slog
// logger with automatic context-based attribute injection (request IDs) and
// optional Sentry fan-out for warnings and errors.
//
// # Basic usage
//
//	log := logger.New("web", middleware.RequestIDExtractor())
//	log.InfoContext(ctx, "locale resolved", slog.String("locale", "es"))
//
// # Sentry fan-out
//
//	log := logger.NewWithSentry("web", logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	})
//
// When the DSN is empty or Sentry initialization fails, the logger degrades
// to stdout-only; the same code path works in development and production.
//
// Extractors run per log call so request-scoped values stay fresh:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
package logger
