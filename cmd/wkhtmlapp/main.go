package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-wkhtmlapp"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error

	switch cmd {
	case "pdf":
		err = runRender(ctx, wkhtmlapp.ToolPDF, rest, env)
	case "image":
		err = runRender(ctx, wkhtmlapp.ToolImage, rest, env)
	case "options":
		err = runOptions(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "wkhtmlapp %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		if !errors.Is(err, ErrBatchFailed) {
			fmt.Fprintln(env.Stderr, "error:", err)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}
