package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		quiet   bool
		verbose bool
		enabled slog.Level
		muted   slog.Level
	}{
		{"default", false, false, slog.LevelInfo, slog.LevelDebug},
		{"quiet", true, false, slog.LevelError, slog.LevelWarn},
		{"verbose", false, true, slog.LevelDebug, slog.LevelDebug - 1},
		{"quiet wins", true, true, slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := newLogger(&bytes.Buffer{}, tt.quiet, tt.verbose)
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Enabled(ctx, tt.muted) {
				t.Errorf("level %v should be muted", tt.muted)
			}
		})
	}
}
