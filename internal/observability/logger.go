package observability

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewLogger builds the process logger. Logs go to stderr so they never
// interleave with the interactive menu on stdout. Text output is colored only
// when stderr is a terminal.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg, isatty.IsTerminal(os.Stderr.Fd()))
}

func newLogger(w io.Writer, cfg *config.Config, color bool) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !color,
		})
	}
	return slog.New(h).With("app", "airq")
}

func parseLevel(s string) slog.Level {
	switch s {
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
