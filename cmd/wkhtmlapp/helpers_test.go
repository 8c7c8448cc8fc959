package main

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-wkhtmlapp"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer and environment
// ---------------------------------------------------------------------------

// fakeRenderer records SetArgs and Run calls. Run fails for inputs whose
// value is a key of fail.
type fakeRenderer struct {
	mu     sync.Mutex
	tool   wkhtmlapp.Tool
	opts   int
	args   map[string]string
	runs   []wkhtmlapp.Input
	names  []string
	setErr error
	fail   map[string]error
}

func (f *fakeRenderer) SetArgs(args map[string]string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.args = maps.Clone(args)
	return nil
}

func (f *fakeRenderer) Run(_ context.Context, in wkhtmlapp.Input, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, in)
	f.names = append(f.names, name)
	if err, ok := f.fail[in.Value()]; ok {
		return "", err
	}
	return "/out/id-" + name + "." + f.tool.String(), nil
}

// testEnv holds an Environment wired to buffers and a fake renderer.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	vars     map[string]string
	renderer *fakeRenderer
	newErr   error
}

// newTestEnv returns an environment with no variables set and a renderer
// that always succeeds.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		vars:     map[string]string{},
		renderer: &fakeRenderer{fail: map[string]error{}},
	}
	te.Environment = &Environment{
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewRenderer: func(tool wkhtmlapp.Tool, opts ...wkhtmlapp.Option) (Renderer, error) {
			if te.newErr != nil {
				return nil, te.newErr
			}
			te.renderer.tool = tool
			te.renderer.opts = len(opts)
			return te.renderer, nil
		},
		LookPath: func(file string) (string, error) {
			return "", errors.New("not found")
		},
		ProbeVersion: func(string) (string, error) {
			return "", errors.New("not probed")
		},
	}
	return te
}

// writeFile creates name under a temp directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// renderingFailure builds the error a failing tool run returns.
func renderingFailure(stderr string) error {
	return &wkhtmlapp.Error{
		Kind:   wkhtmlapp.KindRendering,
		Msg:    stderr,
		Stderr: stderr,
		Err:    wkhtmlapp.ErrProcessExit,
	}
}
