// Package wkhtmlapp drives the wkhtmltopdf and wkhtmltoimage command-line
// tools. Nothing is rendered in-process: the package builds the command
// line, feeds the page by file path, URL or standard input, and returns the
// path of the artifact the tool wrote.
//
// # Quick Start
//
//	pdf, err := wkhtmlapp.NewPDF()
//	if err != nil {
//	    log.Fatal(err) // wkhtmltopdf missing or working directory unusable
//	}
//	if err := pdf.SetArg("page-size", "A4"); err != nil {
//	    log.Fatal(err)
//	}
//	path, err := pdf.Run(ctx, wkhtmlapp.HTMLInput("<h1>Hello</h1>"), "hello")
//	// path == "<workdir>/<uuid>-hello.pdf"
//
// Images work the same way, with a selectable format:
//
//	img, err := wkhtmlapp.NewImage()
//	_ = img.SetFormat(wkhtmlapp.FormatPNG)
//	path, err := img.Run(ctx, wkhtmlapp.URLInput("https://example.com"), "shot")
//
// # Options
//
// Each facade accepts only the options of its tool. Values are strings:
// "true" emits a bare --flag, "false" or "" emits nothing, anything else is
// passed as the flag's argument. "toc" and "cover" are positional objects
// and are emitted without dashes.
//
// # Errors
//
// Every error is an *Error. errors.Is(err, ErrService) selects setup
// problems (tool missing, bad working directory, unknown option);
// errors.Is(err, ErrRendering) selects failures of one run, whose Stderr
// field carries the tool's diagnostics.
//
// # Configuration
//
// Functional options override environment defaults:
//
//	WKHTMLAPP_WORK_DIR   artifact directory (default $TMPDIR/wkhtmlapp)
//	WKHTMLTOPDF_CMD      wkhtmltopdf binary
//	WKHTMLTOIMG_CMD      wkhtmltoimage binary
//	WKHTMLAPP_DEBUG      stream URL-flow stderr instead of capturing it
//
// Generated files are never deleted; retention is up to the caller.
package wkhtmlapp
