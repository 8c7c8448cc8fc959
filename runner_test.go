package wkhtmlapp

// Notes:
// - Unit tests inject fakeCommandRunner via withCommandRunner; no real
//   process is spawned except in the TestRunner_RealProcess* tests, which use
//   a POSIX shell script standing in for the wkhtml tools.
// - Output names are made deterministic with withIDGenerator where the exact
//   path matters; uniqueness tests keep the real UUID generator.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestNewRunner - Bootstrap
// ---------------------------------------------------------------------------

func TestNewRunner(t *testing.T) {
	t.Parallel()

	fake := &fakeCommandRunner{versionStdout: "\nwkhtmltopdf 0.12.6\nextra\n"}
	r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
	if err != nil {
		t.Fatalf("NewRunner() unexpected error: %v", err)
	}

	if r.Binary() != "wkhtmltopdf" {
		t.Errorf("Binary() = %q, want %q", r.Binary(), "wkhtmltopdf")
	}
	if r.Version() != "wkhtmltopdf 0.12.6" {
		t.Errorf("Version() = %q, want %q", r.Version(), "wkhtmltopdf 0.12.6")
	}
	if !filepath.IsAbs(r.WorkDir()) {
		t.Errorf("WorkDir() = %q, want absolute path", r.WorkDir())
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.calls) != 1 || !slices.Equal(fake.calls[0].Args, []string{"--version"}) {
		t.Errorf("bootstrap calls = %+v, want one --version probe", fake.calls)
	}
}

func TestNewRunner_ToolNotFound(t *testing.T) {
	t.Parallel()

	causes := []error{
		ErrProcessStart,
		ErrProcessExit,
		context.DeadlineExceeded,
		errors.New("permission denied"),
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{versionErr: cause}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
			if r != nil {
				t.Error("NewRunner() returned a runner on bootstrap failure")
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("NewRunner() error = %v, want *Error", err)
			}
			if e.Kind != KindService {
				t.Errorf("Kind = %v, want %v", e.Kind, KindService)
			}
			if e.Msg != "tool not found, please install it" {
				t.Errorf("Msg = %q, want fixed install message", e.Msg)
			}
			if !errors.Is(err, ErrToolNotFound) {
				t.Errorf("error = %v, want %v", err, ErrToolNotFound)
			}
			if errors.Is(err, cause) {
				t.Error("root cause must not leak into the returned error")
			}
		})
	}
}

func TestNewRunner_EmptyBinary(t *testing.T) {
	t.Parallel()

	fake := &fakeCommandRunner{}
	_, err := NewRunner("", testOptions(t, fake)...)
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("NewRunner(\"\") error = %v, want %v", err, ErrToolNotFound)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no process for empty binary, got %d calls", len(fake.calls))
	}
}

func TestNewRunner_MissingBinaryOnPath(t *testing.T) {
	t.Parallel()

	_, err := NewRunner("wkhtmlapp-definitely-not-installed",
		WithWorkDir(t.TempDir()), WithLogger(discardLogger()))

	if !errors.Is(err, ErrService) || !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("NewRunner() error = %v, want service error wrapping %v", err, ErrToolNotFound)
	}
}

func TestNewRunner_BadWorkDir(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "regular-file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	fake := &fakeCommandRunner{}
	opts := append(testOptions(t, fake), WithWorkDir(file))
	_, err := NewRunner("wkhtmltopdf", opts...)

	if !errors.Is(err, ErrService) || !errors.Is(err, ErrWorkDir) {
		t.Fatalf("NewRunner() error = %v, want service error wrapping %v", err, ErrWorkDir)
	}
}

// ---------------------------------------------------------------------------
// TestRunnerSetWorkDir - Working directory management
// ---------------------------------------------------------------------------

func TestRunnerSetWorkDir(t *testing.T) {
	t.Parallel()

	r, err := NewRunner("wkhtmltopdf", testOptions(t, &fakeCommandRunner{})...)
	if err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(t.TempDir(), "a", "b")
	if err := r.SetWorkDir(nested); err != nil {
		t.Fatalf("SetWorkDir(%q) unexpected error: %v", nested, err)
	}
	if r.WorkDir() != nested {
		t.Errorf("WorkDir() = %q, want %q", r.WorkDir(), nested)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Errorf("SetWorkDir did not create %q", nested)
	}
}

func TestRunnerSetWorkDir_FailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	r, err := NewRunner("wkhtmltopdf", testOptions(t, &fakeCommandRunner{})...)
	if err != nil {
		t.Fatal(err)
	}
	before := r.WorkDir()

	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	err = r.SetWorkDir(file)
	if !errors.Is(err, ErrService) {
		t.Fatalf("SetWorkDir(file) error = %v, want service error", err)
	}
	if r.WorkDir() != before {
		t.Errorf("WorkDir() = %q after failure, want %q", r.WorkDir(), before)
	}
}

// ---------------------------------------------------------------------------
// TestRunnerRun - Command layout per flow
// ---------------------------------------------------------------------------

func TestRunnerRun_CommandLayout(t *testing.T) {
	t.Parallel()

	args := []string{"--page-size", "A4", "toc"}

	tests := []struct {
		name      string
		in        Input
		wantInput string
		wantStdin *string
	}{
		{"file", FileInput("/srv/page.html"), "/srv/page.html", nil},
		{"url", URLInput("https://example.com/"), "https://example.com/", nil},
		{"html", HTMLInput("<h1>Hi</h1>"), "-", ptr("<h1>Hi</h1>")},
		{"empty html", HTMLInput(""), "-", ptr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
			if err != nil {
				t.Fatal(err)
			}

			got, err := r.Run(context.Background(), tt.in, "report.pdf", args)
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}

			wantOut := filepath.Join(r.WorkDir(), "id001-report.pdf")
			if got != wantOut {
				t.Errorf("Run() = %q, want %q", got, wantOut)
			}

			calls := fake.renderCalls()
			if len(calls) != 1 {
				t.Fatalf("render calls = %d, want 1", len(calls))
			}
			call := calls[0]

			wantArgs := []string{"--page-size", "A4", "toc", tt.wantInput, wantOut}
			if !slices.Equal(call.Args, wantArgs) {
				t.Errorf("argv = %q, want %q", call.Args, wantArgs)
			}
			if call.Name != "wkhtmltopdf" {
				t.Errorf("Name = %q, want %q", call.Name, "wkhtmltopdf")
			}
			switch {
			case tt.wantStdin == nil && call.Stdin != nil:
				t.Errorf("Stdin = %q, want none", *call.Stdin)
			case tt.wantStdin != nil && (call.Stdin == nil || *call.Stdin != *tt.wantStdin):
				t.Errorf("Stdin = %v, want %q", call.Stdin, *tt.wantStdin)
			}
		})
	}
}

func TestRunnerRun_DoesNotMutateArgs(t *testing.T) {
	t.Parallel()

	r, err := NewRunner("wkhtmltopdf", testOptions(t, &fakeCommandRunner{})...)
	if err != nil {
		t.Fatal(err)
	}

	args := make([]string, 1, 8)
	args[0] = "--grayscale"
	if _, err := r.RunFile(context.Background(), "a.html", "a.pdf", args); err != nil {
		t.Fatal(err)
	}
	if _, err := r.RunURL(context.Background(), "https://b", "b.pdf", args); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(args, []string{"--grayscale"}) {
		t.Errorf("caller args = %q, want unchanged", args)
	}
	if spare := args[:cap(args)][1]; spare != "" {
		t.Errorf("caller backing array written: %q", spare)
	}
}

func TestRunnerRun_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input
	}{
		{"zero input", Input{}},
		{"empty file", FileInput("")},
		{"empty url", URLInput("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
			if err != nil {
				t.Fatal(err)
			}

			_, err = r.Run(context.Background(), tt.in, "x.pdf", nil)
			if !errors.Is(err, ErrRendering) || !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Run() error = %v, want rendering error wrapping %v", err, ErrInvalidInput)
			}
			if len(fake.renderCalls()) != 0 {
				t.Error("process spawned for invalid input")
			}
		})
	}
}

func TestRunnerRun_InvalidName(t *testing.T) {
	t.Parallel()

	names := []string{"../escape.pdf", "dir/out.pdf", `dir\out.pdf`, "nul\x00.pdf"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
			if err != nil {
				t.Fatal(err)
			}

			_, err = r.RunHTML(context.Background(), "<p/>", name, nil)
			if !errors.Is(err, ErrService) || !errors.Is(err, ErrInvalidName) {
				t.Errorf("Run(name=%q) error = %v, want service error wrapping %v", name, err, ErrInvalidName)
			}
			if len(fake.renderCalls()) != 0 {
				t.Error("process spawned for invalid name")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunnerRun_Failures - Error classification
// ---------------------------------------------------------------------------

func TestRunnerRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        Input
		err       error
		stderr    string
		wantCause error
		wantMsg   string
	}{
		{
			name:      "nonzero exit carries stderr",
			in:        URLInput("https://unreachable.invalid"),
			err:       ErrProcessExit,
			stderr:    "Error: Failed loading page https://unreachable.invalid\n",
			wantCause: ErrProcessExit,
			wantMsg:   "Error: Failed loading page https://unreachable.invalid",
		},
		{
			name:      "nonzero exit without stderr",
			in:        FileInput("page.html"),
			err:       ErrProcessExit,
			wantCause: ErrProcessExit,
			wantMsg:   "process exited with error",
		},
		{
			name:      "stdin write failure",
			in:        HTMLInput("<p>x</p>"),
			err:       ErrStdinWrite,
			wantCause: ErrStdinWrite,
			wantMsg:   "failed to stream html(8 bytes) to wkhtmltopdf",
		},
		{
			name:      "stdin write failure keeps tool diagnostic",
			in:        HTMLInput("<p>x</p>"),
			err:       fmt.Errorf("%w: write |1: broken pipe", ErrStdinWrite),
			stderr:    "Unknown long argument --bogus\n",
			wantCause: ErrStdinWrite,
			wantMsg:   "failed to stream html(8 bytes) to wkhtmltopdf: failed to write to process stdin: write |1: broken pipe: Unknown long argument --bogus",
		},
		{
			name:      "spawn failure",
			in:        FileInput("page.html"),
			err:       ErrProcessStart,
			wantCause: ErrProcessStart,
			wantMsg:   "failed to start wkhtmltopdf",
		},
		{
			name:      "timeout",
			in:        FileInput("page.html"),
			err:       context.DeadlineExceeded,
			wantCause: context.DeadlineExceeded,
			wantMsg:   "wkhtmltopdf timed out",
		},
		{
			name:      "invalid utf-8 in stderr",
			in:        FileInput("page.html"),
			err:       ErrProcessExit,
			stderr:    "bad \xff byte",
			wantCause: ErrProcessExit,
			wantMsg:   "bad � byte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{runErr: tt.err, runStderr: tt.stderr}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
			if err != nil {
				t.Fatal(err)
			}

			out, err := r.Run(context.Background(), tt.in, "out.pdf", nil)
			if out != "" {
				t.Errorf("Run() path = %q on failure, want empty", out)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Run() error = %v, want *Error", err)
			}
			if e.Kind != KindRendering {
				t.Errorf("Kind = %v, want %v", e.Kind, KindRendering)
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("error = %v, want cause %v", err, tt.wantCause)
			}
			if !strings.HasPrefix(e.Msg, tt.wantMsg) {
				t.Errorf("Msg = %q, want prefix %q", e.Msg, tt.wantMsg)
			}
			if !strings.HasPrefix(err.Error(), "Rendering error: ") {
				t.Errorf("Error() = %q, want Rendering error prefix", err.Error())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunnerRun_StderrCapture - Debug mode and explicit capture knobs
// ---------------------------------------------------------------------------

func TestRunnerRun_StderrCapture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  []Option
		flow  Flow
		input Input
		want  bool
	}{
		{"default file", nil, FlowFile, FileInput("a.html"), true},
		{"default url", nil, FlowURL, URLInput("https://a"), true},
		{"default html", nil, FlowHTML, HTMLInput("<p/>"), true},
		{"debug file", []Option{WithDebug(true)}, FlowFile, FileInput("a.html"), true},
		{"debug url", []Option{WithDebug(true)}, FlowURL, URLInput("https://a"), false},
		{"debug html", []Option{WithDebug(true)}, FlowHTML, HTMLInput("<p/>"), true},
		{"explicit off", []Option{WithStderrCapture(FlowHTML, false)}, FlowHTML, HTMLInput("<p/>"), false},
		{"explicit on wins over debug", []Option{WithDebug(true), WithStderrCapture(FlowURL, true)}, FlowURL, URLInput("https://a"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake, tt.opts...)...)
			if err != nil {
				t.Fatal(err)
			}

			if _, err := r.Run(context.Background(), tt.input, "x.pdf", nil); err != nil {
				t.Fatal(err)
			}

			calls := fake.renderCalls()
			if len(calls) != 1 {
				t.Fatalf("render calls = %d, want 1", len(calls))
			}
			if calls[0].CaptureStderr != tt.want {
				t.Errorf("CaptureStderr = %v, want %v", calls[0].CaptureStderr, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunnerRun_Timeout - Deadline propagation
// ---------------------------------------------------------------------------

func TestRunnerRun_Timeout(t *testing.T) {
	t.Parallel()

	fake := &fakeCommandRunner{
		run: func(ctx context.Context, _ commandSpec) (commandResult, error) {
			if _, ok := ctx.Deadline(); !ok {
				return commandResult{}, errors.New("no deadline on context")
			}
			<-ctx.Done()
			return commandResult{}, ctx.Err()
		},
	}
	r, err := NewRunner("wkhtmltopdf", testOptions(t, fake, WithTimeout(20*time.Millisecond))...)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.RunFile(context.Background(), "slow.html", "slow.pdf", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want %v", err, context.DeadlineExceeded)
	}
	if !errors.Is(err, ErrRendering) {
		t.Errorf("Run() error = %v, want rendering error", err)
	}
}

func TestRunnerRun_Canceled(t *testing.T) {
	t.Parallel()

	fake := &fakeCommandRunner{
		run: func(ctx context.Context, _ commandSpec) (commandResult, error) {
			<-ctx.Done()
			return commandResult{}, ctx.Err()
		},
	}
	r, err := NewRunner("wkhtmltopdf", testOptions(t, fake)...)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.RunFile(ctx, "a.html", "a.pdf", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}

func TestWithTimeout_NegativePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(-1) did not panic")
		}
	}()
	WithTimeout(-1)
}

// ---------------------------------------------------------------------------
// TestRunnerRun_Verify - Optional output verification
// ---------------------------------------------------------------------------

func TestRunnerRun_Verify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		write     []byte // nil: the fake tool writes nothing
		wantCause error
	}{
		{"missing output", nil, ErrOutputMissing},
		{"empty output", []byte{}, ErrOutputMissing},
		{"corrupt output", []byte("not a pdf"), ErrOutputInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeCommandRunner{
				run: func(_ context.Context, spec commandSpec) (commandResult, error) {
					if tt.write != nil {
						out := spec.Args[len(spec.Args)-1]
						if err := os.WriteFile(out, tt.write, 0o600); err != nil {
							return commandResult{}, err
						}
					}
					return commandResult{}, nil
				},
			}
			r, err := NewRunner("wkhtmltopdf", testOptions(t, fake, WithVerifyOutput(true))...)
			if err != nil {
				t.Fatal(err)
			}

			_, err = r.RunHTML(context.Background(), "<p/>", "v.pdf", nil)
			if !errors.Is(err, ErrRendering) || !errors.Is(err, tt.wantCause) {
				t.Errorf("Run() error = %v, want rendering error wrapping %v", err, tt.wantCause)
			}
		})
	}
}

func TestRunnerRun_NoVerifyByDefault(t *testing.T) {
	t.Parallel()

	r, err := NewRunner("wkhtmltopdf", testOptions(t, &fakeCommandRunner{})...)
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.RunHTML(context.Background(), "<p/>", "ghost.pdf", nil)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected %q not to exist, stat error = %v", out, err)
	}
}

// ---------------------------------------------------------------------------
// TestRunnerRun_Observer - Run events
// ---------------------------------------------------------------------------

func TestRunnerRun_Observer(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		events []RunEvent
	)
	obs := ObserverFunc(func(ev RunEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	fake := &fakeCommandRunner{
		run: func(_ context.Context, spec commandSpec) (commandResult, error) {
			if spec.Args[len(spec.Args)-2] == "bad.html" {
				return commandResult{Stderr: []byte("boom")}, ErrProcessExit
			}
			return commandResult{}, nil
		},
	}
	r, err := NewRunner("wkhtmltoimage", testOptions(t, fake, WithObserver(obs))...)
	if err != nil {
		t.Fatal(err)
	}

	_, _ = r.RunFile(context.Background(), "good.html", "g.jpg", nil)
	_, _ = r.RunFile(context.Background(), "bad.html", "b.jpg", nil)

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Err != nil || events[0].Flow != FlowFile || events[0].Binary != "wkhtmltoimage" {
		t.Errorf("first event = %+v, want successful file run", events[0])
	}
	if !errors.Is(events[1].Err, ErrProcessExit) {
		t.Errorf("second event Err = %v, want %v", events[1].Err, ErrProcessExit)
	}
}

// ---------------------------------------------------------------------------
// TestRunnerRun_Concurrent - Unique output paths under load
// ---------------------------------------------------------------------------

func TestRunnerRun_Concurrent(t *testing.T) {
	t.Parallel()

	fake := &fakeCommandRunner{}
	opts := []Option{
		WithWorkDir(t.TempDir()),
		WithLogger(discardLogger()),
		withCommandRunner(fake),
	}
	r, err := NewRunner("wkhtmltopdf", opts...)
	if err != nil {
		t.Fatal(err)
	}

	const n = 64
	paths := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			paths[i], errs[i] = r.RunHTML(context.Background(), "<p/>", "same.pdf", nil)
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, p := range paths {
		if errs[i] != nil {
			t.Fatalf("run %d: %v", i, errs[i])
		}
		if seen[p] {
			t.Fatalf("duplicate output path %q", p)
		}
		seen[p] = true
		if !strings.HasSuffix(p, "-same.pdf") {
			t.Errorf("path %q does not end with -same.pdf", p)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunner_RealProcess - End-to-end against a shell stand-in
// ---------------------------------------------------------------------------

func TestRunner_RealProcess(t *testing.T) {
	t.Parallel()

	bin := writeFakeTool(t)
	r, err := NewRunner(bin, WithWorkDir(t.TempDir()), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("NewRunner() unexpected error: %v", err)
	}
	if r.Version() != "wkhtmltox 0.12.6 (fake)" {
		t.Errorf("Version() = %q", r.Version())
	}

	t.Run("html via stdin", func(t *testing.T) {
		out, err := r.RunHTML(context.Background(), "<h1>stdin</h1>", "s.html", nil)
		if err != nil {
			t.Fatalf("RunHTML() unexpected error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "<h1>stdin</h1>" {
			t.Errorf("output = %q, want markup echoed", data)
		}
	})

	t.Run("file", func(t *testing.T) {
		out, err := r.RunFile(context.Background(), "page.html", "f.txt", []string{"--quiet"})
		if err != nil {
			t.Fatalf("RunFile() unexpected error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if strings.TrimSpace(string(data)) != "rendered page.html" {
			t.Errorf("output = %q", data)
		}
	})

	t.Run("nonzero exit", func(t *testing.T) {
		_, err := r.RunURL(context.Background(), "https://fail.example", "u.txt", nil)
		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("RunURL() error = %v, want *Error", err)
		}
		if e.Msg != "Error: Failed loading page https://fail.example" {
			t.Errorf("Msg = %q", e.Msg)
		}
		if e.Stderr != e.Msg {
			t.Errorf("Stderr = %q, want %q", e.Stderr, e.Msg)
		}
	})

	t.Run("tool exits before reading stdin", func(t *testing.T) {
		markup := strings.Repeat("<p>x</p>", 512<<10) // 4 MiB, far beyond the pipe buffer
		_, err := r.RunHTML(context.Background(), markup, "big.html", []string{"--bogus"})
		if !errors.Is(err, ErrRendering) {
			t.Fatalf("RunHTML() error = %v, want rendering error", err)
		}
		if !strings.Contains(err.Error(), "Unknown long argument --bogus") {
			t.Errorf("Error() = %q, want the tool's diagnostic", err.Error())
		}
	})

	t.Run("timeout while streaming stdin", func(t *testing.T) {
		slow, err := NewRunner(bin,
			WithWorkDir(t.TempDir()),
			WithLogger(discardLogger()),
			WithTimeout(200*time.Millisecond))
		if err != nil {
			t.Fatalf("NewRunner() unexpected error: %v", err)
		}

		markup := strings.Repeat("<p>x</p>", 512<<10)
		_, err = slow.RunHTML(context.Background(), markup, "slow.html", []string{"--hang"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("RunHTML() error = %v, want context.DeadlineExceeded", err)
		}
		if errors.Is(err, ErrStdinWrite) {
			t.Errorf("RunHTML() error = %v, should not be reported as a stdin failure", err)
		}
	})
}

func ptr[T any](v T) *T {
	return &v
}
