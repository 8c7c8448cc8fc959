package wkhtmlapp

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables read for library defaults.
const (
	EnvWorkDir    = "WKHTMLAPP_WORK_DIR"
	EnvDebug      = "WKHTMLAPP_DEBUG"
	EnvPDFCommand = "WKHTMLTOPDF_CMD"
	EnvImgCommand = "WKHTMLTOIMG_CMD"
)

// Default binary names, resolved through PATH.
const (
	DefaultPDFBinary   = "wkhtmltopdf"
	DefaultImageBinary = "wkhtmltoimage"
)

// DefaultWorkDir returns the working directory used when neither
// WithWorkDir nor WKHTMLAPP_WORK_DIR is set.
func DefaultWorkDir() string {
	return filepath.Join(os.TempDir(), "wkhtmlapp")
}

// Option configures a Runner or a facade.
type Option func(*settings)

// settings holds construction-time configuration shared by Runner and facades.
type settings struct {
	binary      string
	workDir     string
	debug       bool
	timeout     time.Duration
	verify      bool
	logger      *slog.Logger
	passthrough io.Writer
	capture     map[Flow]bool
	observer    Observer
	exec        commandRunner
	newID       func() string
}

// newSettings applies opts over environment-derived defaults.
func newSettings(opts []Option) *settings {
	s := &settings{
		workDir:     os.Getenv(EnvWorkDir),
		debug:       envBool(EnvDebug),
		passthrough: os.Stderr,
		capture:     map[Flow]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workDir == "" {
		s.workDir = DefaultWorkDir()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// captures reports whether stderr is captured for flow. Explicit
// WithStderrCapture settings win; otherwise debug mode streams the URL
// flow's stderr instead of capturing it.
func (s *settings) captures(flow Flow) bool {
	if c, ok := s.capture[flow]; ok {
		return c
	}
	return !(s.debug && flow == FlowURL)
}

// WithBinary sets the executable name or path of the wrapped tool.
// Facades fall back to WKHTMLTOPDF_CMD / WKHTMLTOIMG_CMD, then to the
// default binary name.
func WithBinary(binary string) Option {
	return func(s *settings) {
		s.binary = binary
	}
}

// WithWorkDir sets the directory where artifacts are written.
// It is created if missing.
func WithWorkDir(dir string) Option {
	return func(s *settings) {
		s.workDir = dir
	}
}

// WithDebug toggles debug mode, overriding WKHTMLAPP_DEBUG.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.debug = debug
	}
}

// WithTimeout bounds every invocation of the tool. Zero means no limit.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("wkhtmlapp: WithTimeout duration must not be negative")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithVerifyOutput makes a zero exit status insufficient for success: the
// artifact must also exist and be structurally valid for its format.
func WithVerifyOutput(verify bool) Option {
	return func(s *settings) {
		s.verify = verify
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithStderrCapture forces stderr capture on or off for one flow.
// Uncaptured stderr is streamed to the debug writer.
func WithStderrCapture(flow Flow, capture bool) Option {
	return func(s *settings) {
		s.capture[flow] = capture
	}
}

// WithDebugWriter sets where uncaptured tool stderr goes. Defaults to os.Stderr.
func WithDebugWriter(w io.Writer) Option {
	return func(s *settings) {
		s.passthrough = w
	}
}

// WithObserver registers an observer notified after every invocation.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}

// withCommandRunner injects a command runner (for testing).
func withCommandRunner(r commandRunner) Option {
	return func(s *settings) {
		s.exec = r
	}
}

// withIDGenerator injects the output identifier generator (for testing).
func withIDGenerator(fn func() string) Option {
	return func(s *settings) {
		s.newID = fn
	}
}

// envBool parses a boolean environment variable; unset or malformed is false.
func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}
