package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/config"
)

// NewLogger builds the process-wide structured logger from config. The
// production environment gets JSON output regardless of LOG_FORMAT so log
// shippers can parse it.
func NewLogger(cfg *config.AppConfig) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" || cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
