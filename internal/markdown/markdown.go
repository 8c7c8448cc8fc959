// Package markdown renders Markdown sources to standalone HTML documents so
// they can be fed to wkhtmltopdf or wkhtmltoimage through the HTML flow.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrConversion indicates Markdown to HTML conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// defaultTitle is used when the document has no level-1 heading.
const defaultTitle = "Document"

// highlightStyle is the chroma style used for fenced code blocks.
const highlightStyle = "github"

// documentTemplate wraps goldmark's fragment output. wkhtmltox renders with
// an old WebKit, so the stylesheet sticks to CSS2.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "DejaVu Sans", Arial, sans-serif; font-size: 12pt; line-height: 1.45; margin: 0 auto; max-width: 50em; }
pre { padding: 8px; overflow: hidden; page-break-inside: avoid; }
code { font-family: "DejaVu Sans Mono", monospace; font-size: 10pt; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 8px; }
img { max-width: 100%%; }
h1, h2, h3 { page-break-after: avoid; }
</style>
</head>
<body>
%s
</body>
</html>`

var (
	crlf       = regexp.MustCompile(`\r\n?`)
	blankLines = regexp.MustCompile(`\n{4,}`)
)

// Converter turns Markdown into a complete HTML5 document.
type Converter struct {
	md goldmark.Markdown
}

// New creates a Converter with GFM extensions and inline-styled syntax
// highlighting.
func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					// Inline styles: the page is rendered standalone, with no external stylesheet.
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &Converter{md: md}
}

// ToHTML converts Markdown content to a standalone HTML document. The title
// is taken from the first level-1 heading.
// Supports context cancellation via goroutine + select since goldmark
// doesn't natively support context.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		src := []byte(normalize(content))
		doc := c.md.Parser().Parse(text.NewReader(src))

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		title := html.EscapeString(firstHeading(doc, src))
		done <- result{html: fmt.Sprintf(documentTemplate, title, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// normalize converts line endings to \n and limits runs of blank lines.
func normalize(content string) string {
	content = crlf.ReplaceAllString(content, "\n")
	return blankLines.ReplaceAllString(content, "\n\n\n")
}

// firstHeading returns the text of the first level-1 heading in doc.
func firstHeading(doc ast.Node, src []byte) string {
	title := ""
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(nodeText(h, src))
		return ast.WalkStop, nil
	})
	if title == "" {
		return defaultTitle
	}
	return title
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			continue
		}
		sb.WriteString(nodeText(c, src))
	}
	return sb.String()
}
