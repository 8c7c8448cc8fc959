package wkhtmlapp

import (
	"context"
	"maps"
	"strings"
)

// formatOption is the wkhtmltoimage option selecting the output format.
const formatOption = "format"

// Format is an image output format supported by wkhtmltoimage.
type Format string

// Supported image formats.
const (
	FormatJPG Format = "jpg"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
	FormatSVG Format = "svg"
)

// DefaultFormat is used until SetFormat or the format option says otherwise.
const DefaultFormat = FormatJPG

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJPG, FormatPNG, FormatBMP, FormatSVG}
}

// ParseFormat converts a format name (case-insensitive, "jpeg" accepted)
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", serviceError(ErrInvalidFormat, "Invalid image format: %s", s)
	}
}

// String returns the format name, which is also its file extension.
func (f Format) String() string {
	return string(f)
}

// Image drives wkhtmltoimage. The tracked format and the format option are
// always kept in sync.
type Image struct {
	*facade
	format Format
}

// NewImage bootstraps wkhtmltoimage. The binary comes from WithBinary, then
// WKHTMLTOIMG_CMD, then "wkhtmltoimage" on PATH.
func NewImage(opts ...Option) (*Image, error) {
	f, err := newFacade(ToolImage, EnvImgCommand, DefaultImageBinary, opts)
	if err != nil {
		return nil, err
	}
	return &Image{facade: f, format: DefaultFormat}, nil
}

// Format returns the format used for the next run's extension.
func (img *Image) Format() Format {
	return img.format
}

// SetFormat selects the output format.
func (img *Image) SetFormat(f Format) error {
	return img.SetArg(formatOption, string(f))
}

// SetArg sets one option. Setting "format" validates the value and updates
// the tracked format; clearing it restores DefaultFormat.
func (img *Image) SetArg(name, value string) error {
	if name != formatOption {
		return img.facade.SetArg(name, value)
	}
	return img.SetArgs(map[string]string{name: value})
}

// SetArgs sets several options at once; on any invalid name or format
// nothing is applied.
func (img *Image) SetArgs(args map[string]string) error {
	value, hasFormat := args[formatOption]
	if !hasFormat {
		return img.facade.SetArgs(args)
	}

	next := DefaultFormat
	if value != "" {
		f, err := ParseFormat(value)
		if err != nil {
			return err
		}
		next = f
	}

	// Normalize "jpeg" and case variants to the canonical extension.
	normalized := maps.Clone(args)
	if value != "" {
		normalized[formatOption] = string(next)
	}

	if err := img.facade.SetArgs(normalized); err != nil {
		return err
	}
	img.format = next
	return nil
}

// Run renders in to {workdir}/{uuid}-{name}.{format} and returns that path.
func (img *Image) Run(ctx context.Context, in Input, name string) (string, error) {
	return img.run(ctx, in, name, string(img.format))
}
