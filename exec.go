package wkhtmlapp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/alnah/go-wkhtmlapp/internal/process"
)

// commandSpec describes one external process invocation.
type commandSpec struct {
	Name          string
	Args          []string
	Stdin         *string   // nil: no stdin pipe is opened
	CaptureStderr bool      // false: stderr is streamed to Passthrough
	Passthrough   io.Writer // destination of uncaptured stderr
}

// commandResult holds the captured output of a finished process.
type commandResult struct {
	Stdout []byte
	Stderr []byte
}

// commandRunner abstracts process execution to enable testing without real
// subprocesses. Implementations wrap failures with ErrProcessStart,
// ErrStdinWrite or ErrProcessExit, or return the context error.
type commandRunner interface {
	Run(ctx context.Context, spec commandSpec) (commandResult, error)
}

var _ commandRunner = (*execRunner)(nil)

// execRunner implements commandRunner using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, spec commandSpec) (commandResult, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...) // #nosec G204 -- binary is caller configuration
	process.Configure(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if spec.CaptureStderr {
		cmd.Stderr = &stderr
	} else {
		cmd.Stderr = spec.Passthrough
	}

	var stdin io.WriteCloser
	if spec.Stdin != nil {
		var err error
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return commandResult{}, fmt.Errorf("%w: creating stdin pipe: %v", ErrProcessStart, err)
		}
	}

	if err := cmd.Start(); err != nil {
		if stdin != nil {
			_ = stdin.Close()
		}
		return commandResult{}, fmt.Errorf("%w: %v", ErrProcessStart, err)
	}

	if stdin != nil {
		_, werr := io.WriteString(stdin, *spec.Stdin)
		if cerr := stdin.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			// Reap the child; its exit status is secondary to the write failure.
			_ = cmd.Wait()
			res := commandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			return res, fmt.Errorf("%w: %v", ErrStdinWrite, werr)
		}
	}

	err := cmd.Wait()
	res := commandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, fmt.Errorf("%w: %v", ErrProcessExit, err)
	}
	return res, fmt.Errorf("waiting for process: %w", err)
}
