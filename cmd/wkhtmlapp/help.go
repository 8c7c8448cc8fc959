package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-wkhtmlapp"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmlapp <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  pdf        Render pages to PDF with wkhtmltopdf")
	fmt.Fprintln(w, "  image      Render pages to images with wkhtmltoimage")
	fmt.Fprintln(w, "  options    List option names a tool accepts")
	fmt.Fprintln(w, "  doctor     Check the tools and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wkhtmlapp help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the pdf and image commands.
func printRenderUsage(w io.Writer, tool wkhtmlapp.Tool) {
	binary, envVar := toolBinary(tool, "")

	fmt.Fprintf(w, "Usage: wkhtmlapp %s <input>... [flags]\n", tool)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Render each input with %s and print the generated file paths.\n", binary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs:")
	fmt.Fprintln(w, "  http(s)://...             Page served at a URL")
	fmt.Fprintln(w, "  -                         HTML read from stdin")
	fmt.Fprintln(w, "  file.md                   Markdown, converted to HTML first")
	fmt.Fprintln(w, "  file.html                 Any other local file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --work-dir <dir>      Directory for generated files")
	fmt.Fprintln(w, "  -n, --name <s>            Output name (single input only)")
	if tool == wkhtmlapp.ToolImage {
		fmt.Fprintln(w, "  -f, --format <s>          Image format: jpg, png, bmp, svg")
	}
	fmt.Fprintln(w, "      --verify              Check generated files are valid")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tool:")
	fmt.Fprintf(w, "      --bin <path>          Executable (default %s, or %s)\n", binary, envVar)
	fmt.Fprintln(w, "  -s, --set <name=value>    Tool option without dashes (repeatable)")
	fmt.Fprintln(w, "                            A bare name enables a switch: --set grayscale")
	fmt.Fprintln(w, "                            true emits a bare flag, false omits it")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-invocation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent tool processes (0 = auto)")
	fmt.Fprintln(w, "      --debug               Stream tool stderr for URL inputs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --metrics-file <path> Write Prometheus metrics after the run")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show tool invocations and timing")
}

// printOptionsUsage prints usage for the options command.
func printOptionsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmlapp options <pdf|image>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the option names accepted by --set and config files.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmlapp doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that wkhtmltopdf and wkhtmltoimage run and the working directory is usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Output as JSON")
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "pdf":
		printRenderUsage(env.Stdout, wkhtmlapp.ToolPDF)
	case "image":
		printRenderUsage(env.Stdout, wkhtmlapp.ToolImage)
	case "options":
		printOptionsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: wkhtmlapp version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: wkhtmlapp help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
