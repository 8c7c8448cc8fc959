// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-wkhtmlapp/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForToolNotFound returns hints for a binary that failed its --version probe.
// envVar is the variable overriding the binary path (WKHTMLTOPDF_CMD or
// WKHTMLTOIMG_CMD).
func ForToolNotFound(binary, envVar string) string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "install the wkhtmltopdf package in the image (it ships both tools)")
	} else {
		hints = append(hints, "install wkhtmltopdf from https://wkhtmltopdf.org/downloads.html (it ships both tools)")
	}

	if os.Getenv(envVar) == "" {
		hints = append(hints, "or set "+envVar+" to the full path of "+binary)
	} else {
		hints = append(hints, "check that "+envVar+"="+os.Getenv(envVar)+" points to an executable")
	}

	return formatHints(hints)
}

// ForRendering inspects tool stderr and returns a hint for well-known
// wkhtmltox failures, or "" if nothing matches.
func ForRendering(stderr string) string {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "cannot connect to x server"), strings.Contains(s, "qxcbconnection"):
		return format("this wkhtmltox build needs a display; use the patched-qt build or run under xvfb-run")
	case strings.Contains(s, "hostnotfounderror"), strings.Contains(s, "connectionrefusederror"):
		return format("the page or one of its resources is unreachable; check the URL and network access")
	case strings.Contains(s, "protocolunknownerror"), strings.Contains(s, "blocked access to file"):
		return format("local resources are blocked by default; add --set enable-local-file-access=true")
	case strings.Contains(s, "contentnotfounderror"):
		return format("a linked resource returned 404; add --set load-error-handling=ignore to skip it")
	default:
		return ""
	}
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for slow pages, raise --timeout or set javascript-delay lower")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/wkhtmlapp/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/wkhtmlapp") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForWorkDir returns hints for working directory errors.
func ForWorkDir() string {
	return format("check parent directory exists and is writable, or set WKHTMLAPP_WORK_DIR")
}

// ForInvalidOption returns hints for option names outside a tool's allowlist.
func ForInvalidOption(tool string) string {
	return format("run 'wkhtmlapp options " + tool + "' to list accepted names (without leading dashes)")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
