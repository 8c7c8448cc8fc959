package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wkhtmlapp"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds all flags for the pdf and image commands.
type renderFlags struct {
	common      commonFlags
	workDir     string
	binary      string
	name        string
	set         []string
	format      string
	workers     int
	timeout     string
	verify      bool
	debug       bool
	metricsFile string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show tool invocations and timing")
}

// parseRenderFlags parses pdf or image command flags and returns positional args.
func parseRenderFlags(tool wkhtmlapp.Tool, args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet(tool.String(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.workDir, "work-dir", "", "directory for generated files")
	fs.StringVar(&f.binary, "bin", "", "tool executable name or path")
	fs.StringVarP(&f.name, "name", "n", "", "output name (single input only)")
	fs.StringArrayVarP(&f.set, "set", "s", nil, "tool option as name=value (repeatable)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent tool processes (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-invocation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.verify, "verify", false, "check generated files are valid")
	fs.BoolVar(&f.debug, "debug", false, "stream URL renderings' tool stderr")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	if tool == wkhtmlapp.ToolImage {
		fs.StringVarP(&f.format, "format", "f", "", "image format: jpg, png, bmp, svg")
	}

	fs.Usage = func() { printRenderUsage(stderr, tool) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &doctorFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "output as JSON")

	fs.Usage = func() { printDoctorUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
