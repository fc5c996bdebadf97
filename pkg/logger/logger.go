package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON logger tagged with a component name and optional
// context extractors. The component attribute makes per-subsystem filtering
// cheap in log search.
func New(component string, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(newExtractorHandler(h, extractors...)).With(
		slog.String("component", component),
	)
}
