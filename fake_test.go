package wkhtmlapp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeCommandRunner records invocations and answers --version probes.
type fakeCommandRunner struct {
	mu    sync.Mutex
	calls []commandSpec

	versionErr    error
	versionStdout string
	runErr        error
	runStdout     string
	runStderr     string
	// run, when set, replaces the canned response for render calls.
	run func(ctx context.Context, spec commandSpec) (commandResult, error)
}

func (f *fakeCommandRunner) Run(ctx context.Context, spec commandSpec) (commandResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, spec)
	f.mu.Unlock()

	if len(spec.Args) == 1 && spec.Args[0] == versionFlag {
		if f.versionErr != nil {
			return commandResult{Stderr: []byte("exec: not found")}, f.versionErr
		}
		out := f.versionStdout
		if out == "" {
			out = "wkhtmltopdf 0.12.6 (with patched qt)\n"
		}
		return commandResult{Stdout: []byte(out)}, nil
	}

	if f.run != nil {
		return f.run(ctx, spec)
	}
	return commandResult{Stdout: []byte(f.runStdout), Stderr: []byte(f.runStderr)}, f.runErr
}

// renderCalls returns the recorded invocations other than the bootstrap probe.
func (f *fakeCommandRunner) renderCalls() []commandSpec {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []commandSpec
	for _, c := range f.calls {
		if len(c.Args) == 1 && c.Args[0] == versionFlag {
			continue
		}
		out = append(out, c)
	}
	return out
}

// sequentialIDs returns a deterministic identifier generator.
func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("id%03d", n.Add(1))
	}
}

// discardLogger keeps test output quiet.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testOptions returns the options shared by unit tests: a temp work dir,
// a fake command runner and a silent logger.
func testOptions(t *testing.T, fake *fakeCommandRunner, extra ...Option) []Option {
	t.Helper()
	opts := []Option{
		WithWorkDir(t.TempDir()),
		WithLogger(discardLogger()),
		withCommandRunner(fake),
		withIDGenerator(sequentialIDs()),
	}
	return append(opts, extra...)
}

// fakeToolScript emulates the wkhtml command line: it answers --version,
// rejects --bogus before reading stdin, stalls on --hang, fails with a
// diagnostic when the input contains "fail", and otherwise writes the input
// (or stdin for "-") to the output path.
const fakeToolScript = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "wkhtmltox 0.12.6 (fake)"
  exit 0
fi
for a in "$@"; do
  case "$a" in
    --bogus)
      echo "Unknown long argument --bogus" >&2
      exit 1
      ;;
    --hang)
      sleep 5
      exit 0
      ;;
  esac
done
prev=""
last=""
for a in "$@"; do
  prev="$last"
  last="$a"
done
case "$prev" in
  *fail*)
    echo "Error: Failed loading page $prev" >&2
    exit 1
    ;;
  -)
    cat > "$last"
    ;;
  *)
    echo "rendered $prev" > "$last"
    ;;
esac
`

// writeFakeTool installs fakeToolScript as an executable and returns its path.
func writeFakeTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake tool requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "wkhtml-fake")
	if err := os.WriteFile(path, []byte(fakeToolScript), 0o700); err != nil { // #nosec G306 -- test executable
		t.Fatalf("writing fake tool: %v", err)
	}
	return path
}
