package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the application logger for the given environment.
// Production emits JSON lines; everywhere else a text handler is used.
// LOG_LEVEL accepts debug, info, warn or error and defaults to info.
func NewLogger(environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(os.Getenv("LOG_LEVEL"))}
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "vacationbooking")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
