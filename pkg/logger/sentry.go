package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	// MinLevel selects which levels are forwarded to Sentry as logs.
	// Errors always create Issues.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes to stdout and mirrors
// warnings/errors to Sentry. An empty DSN or a failed Sentry init degrades
// to the plain New logger so the diagnostic sink never becomes a fault of
// its own.
func NewWithSentry(component string, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	if cfg.DSN == "" {
		return New(component, extractors...)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		log := New(component, extractors...)
		log.Error("sentry init failed, logging to stdout only",
			slog.String("error", err.Error()))
		return log
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	stdoutHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := fanoutHandler{primary: stdoutHandler, mirror: sentryHandler}

	return slog.New(newExtractorHandler(combined, extractors...)).With(
		slog.String("component", component),
	)
}

// fanoutHandler mirrors records from a primary handler to a best-effort
// secondary one. Both sides see every record they are enabled for; failures
// are joined so a mirror fault surfaces without masking the primary result.
type fanoutHandler struct {
	primary slog.Handler
	mirror  slog.Handler
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.primary.Enabled(ctx, level) || h.mirror.Enabled(ctx, level)
}

func (h fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var primaryErr, mirrorErr error
	if h.primary.Enabled(ctx, rec.Level) {
		primaryErr = h.primary.Handle(ctx, rec.Clone())
	}
	if h.mirror.Enabled(ctx, rec.Level) {
		mirrorErr = h.mirror.Handle(ctx, rec.Clone())
	}
	return errors.Join(primaryErr, mirrorErr)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return fanoutHandler{
		primary: h.primary.WithAttrs(attrs),
		mirror:  h.mirror.WithAttrs(attrs),
	}
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	return fanoutHandler{
		primary: h.primary.WithGroup(name),
		mirror:  h.mirror.WithGroup(name),
	}
}
