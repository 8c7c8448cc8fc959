package wkhtmlapp

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	// ErrService marks setup and configuration failures: tool missing,
	// unusable working directory, invalid option name.
	ErrService = errors.New("service error")

	// ErrRendering marks failures of one specific invocation: spawn failure,
	// stdin write failure, nonzero exit, output checks.
	ErrRendering = errors.New("rendering error")
)

// Sentinel causes, reachable through errors.Is on any *Error.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidFormat = errors.New("invalid image format")
	ErrInvalidName   = errors.New("invalid output name")
	ErrWorkDir       = errors.New("invalid working directory")
	ErrInvalidInput  = errors.New("invalid input")

	ErrProcessStart  = errors.New("failed to start process")
	ErrStdinWrite    = errors.New("failed to write to process stdin")
	ErrProcessExit   = errors.New("process exited with error")
	ErrOutputMissing = errors.New("output file missing")
	ErrOutputInvalid = errors.New("output file invalid")
)

// toolNotFoundMessage is deliberately independent of the OS error so users
// always see the same actionable text. The cause is logged separately.
const toolNotFoundMessage = "tool not found, please install it"

// ErrorKind distinguishes service errors from rendering errors.
type ErrorKind int

const (
	KindService ErrorKind = iota + 1
	KindRendering
)

// String returns the human-readable class name.
func (k ErrorKind) String() string {
	switch k {
	case KindService:
		return "Service error"
	case KindRendering:
		return "Rendering error"
	default:
		return "error"
	}
}

// Error is the typed error returned by facades and runners.
type Error struct {
	Kind   ErrorKind
	Msg    string // human-readable cause
	Stderr string // captured diagnostic output of the tool, if any
	Err    error  // underlying cause, usually one of the sentinels above
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports class membership so errors.Is(err, ErrService) works without
// the class sentinel being part of the unwrap chain.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrService:
		return e.Kind == KindService
	case ErrRendering:
		return e.Kind == KindRendering
	}
	return false
}

func serviceError(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindService, Msg: fmt.Sprintf(format, args...), Err: cause}
}

func renderingError(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindRendering, Msg: fmt.Sprintf(format, args...), Err: cause}
}
