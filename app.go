package wkhtmlapp

import "slices"

// App bundles both facades.
type App struct {
	PDF   *PDF
	Image *Image
}

// NewApp bootstraps wkhtmltopdf and wkhtmltoimage with the same options.
// WithBinary is ignored here since each facade needs its own binary; use
// the environment variables or build the facades separately.
func NewApp(opts ...Option) (*App, error) {
	opts = append(slices.Clip(opts), WithBinary(""))

	pdf, err := NewPDF(opts...)
	if err != nil {
		return nil, err
	}
	img, err := NewImage(opts...)
	if err != nil {
		return nil, err
	}
	return &App{PDF: pdf, Image: img}, nil
}
