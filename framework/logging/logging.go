// Package logging builds the application's slog.Logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a logger writing to w. It does not set the global logger, so
// several applications (or tests) can hold isolated loggers.
//
//	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn and error to their slog levels.
// Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
