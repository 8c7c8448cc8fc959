package main

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger for CLI diagnostics on w.
// Quiet keeps errors only; verbose adds the library's debug output.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
