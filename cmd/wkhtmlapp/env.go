package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-wkhtmlapp"
)

// Renderer is the part of the PDF and Image facades the CLI drives.
type Renderer interface {
	SetArgs(args map[string]string) error
	Run(ctx context.Context, in wkhtmlapp.Input, name string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ Renderer = (*wkhtmlapp.PDF)(nil)
	_ Renderer = (*wkhtmlapp.Image)(nil)
)

// RendererFactory builds a bootstrapped renderer for tool.
type RendererFactory func(tool wkhtmlapp.Tool, opts ...wkhtmlapp.Option) (Renderer, error)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	NewRenderer  RendererFactory
	LookPath     func(file string) (string, error)
	ProbeVersion func(binary string) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		NewRenderer:  newRenderer,
		LookPath:     exec.LookPath,
		ProbeVersion: probeVersion,
	}
}

// newRenderer bootstraps the real facade for tool.
func newRenderer(tool wkhtmlapp.Tool, opts ...wkhtmlapp.Option) (Renderer, error) {
	if tool == wkhtmlapp.ToolImage {
		img, err := wkhtmlapp.NewImage(opts...)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	pdf, err := wkhtmlapp.NewPDF(opts...)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// probeTimeout bounds the --version probe run by doctor.
const probeTimeout = 10 * time.Second

// probeVersion bootstraps a runner for binary and returns the version line.
func probeVersion(binary string) (string, error) {
	r, err := wkhtmlapp.NewRunner(binary,
		wkhtmlapp.WithTimeout(probeTimeout),
		wkhtmlapp.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		return "", err
	}
	return r.Version(), nil
}
