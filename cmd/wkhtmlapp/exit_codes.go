package main

import (
	"errors"
	"os"

	"github.com/alnah/go-wkhtmlapp"
	"github.com/alnah/go-wkhtmlapp/internal/config"
)

// Exit codes for the wkhtmlapp CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Every input rendered
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or option names
	ExitIO        = 3 // Input not found, permission denied
	ExitTool      = 4 // wkhtmltopdf/wkhtmltoimage missing or unusable
	ExitRendering = 5 // The tool ran and failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Tool errors (exit 4)
	if errors.Is(err, wkhtmlapp.ErrToolNotFound) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, wkhtmlapp.ErrWorkDir) ||
		errors.Is(err, ErrWriteMetrics) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, wkhtmlapp.ErrService) {
		return ExitUsage
	}

	// Rendering errors (exit 5)
	if errors.Is(err, wkhtmlapp.ErrRendering) {
		return ExitRendering
	}

	return ExitGeneral
}
