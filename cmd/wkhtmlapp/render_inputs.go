package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/alnah/go-wkhtmlapp"
	"github.com/alnah/go-wkhtmlapp/internal/fileutil"
	"github.com/alnah/go-wkhtmlapp/internal/markdown"
)

// stdinArg reads HTML markup from standard input.
const stdinArg = "-"

// Fallback output names when the input carries none.
const (
	stdinName = "stdin"
	urlName   = "page"
)

// maxStdinSize bounds markup read from standard input.
const maxStdinSize = 64 << 20

// unsafeNameChars matches characters replaced when deriving a name from a URL.
var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// renderJob pairs one command-line input with its resolved source.
type renderJob struct {
	arg   string // as given on the command line
	input wkhtmlapp.Input
	name  string // logical output name, without extension
}

// resolveJobs classifies every argument. URLs are passed through, "-" reads
// markup from stdin, Markdown files are converted to HTML, and anything else
// is rendered as a local file.
func resolveJobs(ctx context.Context, args []string, name string, stdin io.Reader) ([]renderJob, error) {
	var md *markdown.Converter
	jobs := make([]renderJob, 0, len(args))
	seenStdin := false

	for _, arg := range args {
		job := renderJob{arg: arg}

		switch {
		case fileutil.IsURL(arg):
			job.input = wkhtmlapp.URLInput(arg)
			job.name = nameFromURL(arg)

		case arg == stdinArg:
			if seenStdin {
				return nil, fmt.Errorf("%w: stdin (-) given more than once", ErrUsage)
			}
			seenStdin = true
			markup, err := readStdin(stdin)
			if err != nil {
				return nil, err
			}
			job.input = wkhtmlapp.HTMLInput(markup)
			job.name = stdinName

		case fileutil.IsMarkdown(arg):
			if md == nil {
				md = markdown.New()
			}
			content, err := os.ReadFile(arg) // #nosec G304 -- user-provided input path
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
			}
			markup, err := md.ToHTML(ctx, string(content))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", arg, err)
			}
			job.input = wkhtmlapp.HTMLInput(markup)
			job.name = fileutil.BaseName(arg)

		default:
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%w: %s is a directory", ErrReadInput, arg)
			}
			job.input = wkhtmlapp.FileInput(arg)
			job.name = fileutil.BaseName(arg)
		}

		if name != "" {
			job.name = name
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// readStdin reads markup up to maxStdinSize.
func readStdin(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}
	if len(data) > maxStdinSize {
		return "", fmt.Errorf("%w: stdin exceeds %d bytes", ErrReadInput, maxStdinSize)
	}
	return string(data), nil
}

// nameFromURL derives a file-safe name from host and path.
//
// Examples:
//   - "https://example.com" -> "example.com"
//   - "https://example.com/docs/intro.html" -> "example.com-docs-intro.html"
func nameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return urlName
	}
	name := unsafeNameChars.ReplaceAllString(u.Host+u.Path, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return urlName
	}
	return name
}
