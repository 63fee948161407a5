// Package observability builds the application's structured loggers.
//
// Matching decisions are reported through CLI output and API responses;
// the slog loggers here carry the operational events around them (config
// errors, storage failures, request logging).
package observability

import (
	"log/slog"
	"os"

	"github.com/attachmatch/attachment-match-backend/internal/infrastructure/config"
)

// NewLogger builds a slog logger from the logging section of the
// configuration. Unknown levels fall back to info, unknown formats to the
// human-readable text handler; the matcher keeps running either way.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
