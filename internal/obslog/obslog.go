// Package obslog configures the process-wide structured logger used to
// trace planner and executor decisions (pushdown applied, join restarts,
// sort materialization).
package obslog

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures slog's default logger from RELO_LOG_LEVEL. Supported
// values: debug, info, warn, error. Unset or unrecognized defaults to info.
func Init() {
	level := slog.LevelInfo
	if raw, ok := os.LookupEnv("RELO_LOG_LEVEL"); ok {
		switch strings.ToLower(raw) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
