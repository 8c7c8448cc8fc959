package wkhtmlapp

import "context"

// pdfExtension is appended to every logical name by PDF.Run.
const pdfExtension = "pdf"

// PDF drives wkhtmltopdf.
type PDF struct {
	*facade
}

// NewPDF bootstraps wkhtmltopdf. The binary comes from WithBinary, then
// WKHTMLTOPDF_CMD, then "wkhtmltopdf" on PATH.
func NewPDF(opts ...Option) (*PDF, error) {
	f, err := newFacade(ToolPDF, EnvPDFCommand, DefaultPDFBinary, opts)
	if err != nil {
		return nil, err
	}
	return &PDF{facade: f}, nil
}

// Run renders in to {workdir}/{uuid}-{name}.pdf and returns that path.
func (p *PDF) Run(ctx context.Context, in Input, name string) (string, error) {
	return p.run(ctx, in, name, pdfExtension)
}
