package wkhtmlapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-wkhtmlapp/internal/fileutil"
	"github.com/alnah/go-wkhtmlapp/internal/verify"
)

// versionFlag is the bootstrap probe understood by both wkhtml tools.
const versionFlag = "--version"

// Runner owns one external binary and the working directory its artifacts
// are written to. Run is safe for concurrent use; output paths never collide.
type Runner struct {
	binary      string
	version     string
	timeout     time.Duration
	verify      bool
	passthrough io.Writer
	capture     map[Flow]bool
	logger      *slog.Logger
	observer    Observer
	exec        commandRunner
	newID       func() string

	mu      sync.RWMutex
	workDir string
}

// NewRunner validates the working directory and bootstraps binary by running
// it with --version. A missing or unusable binary fails construction with a
// service error wrapping ErrToolNotFound.
func NewRunner(binary string, opts ...Option) (*Runner, error) {
	s := newSettings(opts)
	s.binary = binary
	return newRunner(s)
}

func newRunner(s *settings) (*Runner, error) {
	r := &Runner{
		binary:      s.binary,
		timeout:     s.timeout,
		verify:      s.verify,
		passthrough: s.passthrough,
		logger:      s.logger,
		observer:    s.observer,
		exec:        s.exec,
		newID:       s.newID,
		capture: map[Flow]bool{
			FlowFile: s.captures(FlowFile),
			FlowURL:  s.captures(FlowURL),
			FlowHTML: s.captures(FlowHTML),
		},
	}
	if r.exec == nil {
		r.exec = execRunner{}
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}

	if r.binary == "" {
		return nil, serviceError(ErrToolNotFound, "%s", toolNotFoundMessage)
	}
	if err := r.SetWorkDir(s.workDir); err != nil {
		return nil, err
	}
	if err := r.bootstrap(); err != nil {
		return nil, err
	}
	return r, nil
}

// bootstrap checks that the binary can be invoked at all.
func (r *Runner) bootstrap() error {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res, err := r.exec.Run(ctx, commandSpec{
		Name:          r.binary,
		Args:          []string{versionFlag},
		CaptureStderr: true,
	})
	if err != nil {
		r.logger.Error("tool bootstrap failed",
			"binary", r.binary,
			"error", err,
			"stderr", decodeOutput(res.Stderr))
		return serviceError(ErrToolNotFound, "%s", toolNotFoundMessage)
	}

	r.version = firstLine(res.Stdout)
	r.logger.Debug("tool ready", "binary", r.binary, "version", r.version)
	return nil
}

// Binary returns the configured executable name or path.
func (r *Runner) Binary() string {
	return r.binary
}

// Version returns the first line the tool printed for --version.
func (r *Runner) Version() string {
	return r.version
}

// WorkDir returns the current working directory.
func (r *Runner) WorkDir() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.workDir
}

// SetWorkDir switches the artifact directory for subsequent runs. The
// directory is created if missing and must be writable; on failure the
// previous directory stays in effect.
func (r *Runner) SetWorkDir(dir string) error {
	if err := fileutil.EnsureDir(dir); err != nil {
		return serviceError(errors.Join(ErrWorkDir, err), "cannot use working directory %q: %v", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return serviceError(errors.Join(ErrWorkDir, err), "cannot resolve working directory %q: %v", dir, err)
	}

	r.mu.Lock()
	r.workDir = abs
	r.mu.Unlock()
	return nil
}

// RunFile renders the file at path.
func (r *Runner) RunFile(ctx context.Context, path, name string, args []string) (string, error) {
	return r.Run(ctx, FileInput(path), name, args)
}

// RunURL renders the page at addr.
func (r *Runner) RunURL(ctx context.Context, addr, name string, args []string) (string, error) {
	return r.Run(ctx, URLInput(addr), name, args)
}

// RunHTML renders inline markup streamed on stdin.
func (r *Runner) RunHTML(ctx context.Context, markup, name string, args []string) (string, error) {
	return r.Run(ctx, HTMLInput(markup), name, args)
}

// Run invokes the tool once and returns the path of the generated artifact,
// {workdir}/{uuid}-{name}. The command line is args, then the input (or "-"
// for HTML), then the output path. A zero exit status is success; the file
// itself is only checked when WithVerifyOutput is enabled.
func (r *Runner) Run(ctx context.Context, in Input, name string, args []string) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	if err := fileutil.ValidateName(name); err != nil {
		return "", serviceError(errors.Join(ErrInvalidName, err), "invalid output name %q", name)
	}

	output := r.outputPath(name)
	spec := r.commandFor(in, output, args)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Debug("running tool",
		"binary", r.binary,
		"flow", in.Flow(),
		"args", spec.Args,
		"stderr_captured", spec.CaptureStderr)

	start := time.Now()
	res, err := r.exec.Run(ctx, spec)
	rerr := r.classify(in, res, err)
	if rerr == nil && r.verify {
		rerr = r.verifyOutput(output)
	}
	elapsed := time.Since(start)

	r.notify(RunEvent{
		Binary:   r.binary,
		Flow:     in.Flow(),
		Output:   output,
		Duration: elapsed,
		Err:      rerr,
	})

	if rerr != nil {
		r.logger.Warn("tool run failed",
			"binary", r.binary,
			"flow", in.Flow(),
			"duration", elapsed,
			"error", rerr)
		return "", rerr
	}

	if len(res.Stdout) > 0 {
		r.logger.Debug("tool output", "binary", r.binary, "stdout", decodeOutput(res.Stdout))
	}
	r.logger.Debug("tool run succeeded", "binary", r.binary, "output", output, "duration", elapsed)
	return output, nil
}

// outputPath builds a collision-free artifact path under the working directory.
func (r *Runner) outputPath(name string) string {
	return filepath.Join(r.WorkDir(), r.newID()+"-"+name)
}

// commandFor lays out the argv for in: flags, input, output.
func (r *Runner) commandFor(in Input, output string, args []string) commandSpec {
	target := in.Value()
	var stdin *string
	if in.Flow() == FlowHTML {
		target = stdinMarker
		markup := in.Value()
		stdin = &markup
	}

	argv := slices.Clone(args)
	argv = append(argv, target, output)

	return commandSpec{
		Name:          r.binary,
		Args:          argv,
		Stdin:         stdin,
		CaptureStderr: r.capture[in.Flow()],
		Passthrough:   r.passthrough,
	}
}

// classify maps a command failure to a rendering error carrying stderr.
func (r *Runner) classify(in Input, res commandResult, err error) error {
	if err == nil {
		return nil
	}

	stderr := decodeOutput(res.Stderr)
	e := &Error{Kind: KindRendering, Stderr: stderr, Err: err}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		e.Msg = fmt.Sprintf("%s timed out", r.binary)
	case errors.Is(err, context.Canceled):
		e.Msg = fmt.Sprintf("%s canceled", r.binary)
	case errors.Is(err, ErrProcessStart):
		e.Msg = fmt.Sprintf("failed to start %s: %v", r.binary, err)
	case errors.Is(err, ErrStdinWrite):
		// The tool usually stopped reading because it already failed; its
		// diagnostic matters more than the broken pipe.
		e.Msg = fmt.Sprintf("failed to stream %s to %s: %v", in, r.binary, err)
		if stderr != "" {
			e.Msg += ": " + stderr
		}
	case errors.Is(err, ErrProcessExit) && stderr != "":
		e.Msg = stderr
	default:
		e.Msg = err.Error()
	}
	return e
}

// verifyOutput checks the artifact after a zero exit status.
func (r *Runner) verifyOutput(path string) error {
	err := verify.File(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, verify.ErrMissing) || errors.Is(err, verify.ErrEmpty) {
		return renderingError(errors.Join(ErrOutputMissing, err), "%s exited successfully but produced no output: %v", r.binary, err)
	}
	return renderingError(errors.Join(ErrOutputInvalid, err), "%s produced an invalid file: %v", r.binary, err)
}

func (r *Runner) notify(ev RunEvent) {
	if r.observer != nil {
		r.observer.ObserveRun(ev)
	}
}

// decodeOutput converts tool output to trimmed text, replacing invalid UTF-8.
func decodeOutput(b []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�"))
}

// firstLine returns the first non-empty line of b.
func firstLine(b []byte) string {
	for _, line := range bytes.Split(b, []byte("\n")) {
		if s := decodeOutput(line); s != "" {
			return s
		}
	}
	return ""
}
