// Package logger configures structured logging for devlinks. Diagnostic logs
// go to stderr as JSON; user-facing output stays on stdout.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a JSON slog.Logger writing to w at the given level.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the process-wide default. A nil
// writer means os.Stderr. Verbose mode logs at debug, otherwise warn.
func SetupDefault(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	l := Setup(w, level)
	slog.SetDefault(l)
	return l
}

// Discard returns a logger that drops everything. Used by tests and by
// library constructors that receive a nil logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
