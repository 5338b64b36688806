// Package logging builds the structured logger shared by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger writing to w. Debug enables debug level output.
func New(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup builds a logger and installs it as the process default so that packages
// logging through slog.Default pick it up.
func Setup(w io.Writer, debug bool) *slog.Logger {
	logger := New(w, debug)
	slog.SetDefault(logger)
	return logger
}
