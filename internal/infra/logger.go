package infra

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging type passed between packages.
type Logger = zerolog.Logger

// NewLogger builds the process logger. development switches to a console
// writer at debug level; level, when set, overrides the environment default.
func NewLogger(appEnv, level string) zerolog.Logger {
	return newLogger(os.Stdout, appEnv, level)
}

func newLogger(out io.Writer, appEnv, level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if appEnv == "development" {
		lvl = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		lvl = parsed
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "contentportal").
		Logger()
}

// DiscardLogger returns a logger that drops everything. Components use it when
// the caller injects none.
func DiscardLogger() *Logger {
	l := zerolog.New(io.Discard)
	return &l
}
