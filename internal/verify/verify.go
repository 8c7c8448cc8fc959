// Package verify checks that a rendered artifact exists and is structurally
// valid for its format. It never inspects content beyond what is needed to
// tell a real document from a truncated or empty one.
package verify

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	_ "golang.org/x/image/bmp" // register decoder
)

// Sentinel errors for artifact verification.
var (
	ErrMissing = errors.New("file does not exist")
	ErrEmpty   = errors.New("file is empty")
	ErrInvalid = errors.New("file is not a valid document")
)

// svgSniffLen is how much of an SVG file is scanned for the root element.
const svgSniffLen = 4096

// File verifies the artifact at path, choosing the check from its extension.
// Unknown extensions only get the existence and size checks.
func File(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalid, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDF(path)
	case ".png", ".jpg", ".jpeg", ".bmp":
		return Image(path)
	case ".svg":
		return SVG(path)
	default:
		return nil
	}
}

// PDF parses the trailer and page tree and requires at least one page.
// The parser panics on malformed input; panics are reported as ErrInvalid.
func PDF(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInvalid, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return fmt.Errorf("%w: %s has no pages", ErrInvalid, path)
	}
	return nil
}

// Image decodes the header of a raster image (PNG, JPEG or BMP).
func Image(path string) error {
	f, err := os.Open(path) // #nosec G304 -- path is a generated artifact
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: %s has zero dimensions", ErrInvalid, path)
	}
	return nil
}

// SVG checks that an <svg root element appears near the start of the file.
func SVG(path string) error {
	f, err := os.Open(path) // #nosec G304 -- path is a generated artifact
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, svgSniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !bytes.Contains(head[:n], []byte("<svg")) {
		return fmt.Errorf("%w: %s has no <svg> root element", ErrInvalid, path)
	}
	return nil
}
