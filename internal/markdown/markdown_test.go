package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestToHTML - Document structure
// ---------------------------------------------------------------------------

func TestToHTML(t *testing.T) {
	t.Parallel()

	conv := New()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading becomes title and id",
			input:    "# Release Notes\n\nBody text.",
			contains: []string{"<title>Release Notes</title>", `<h1 id="release-notes">Release Notes</h1>`, "<p>Body text.</p>"},
		},
		{
			name:     "emphasis in heading title",
			input:    "# The *quick* fox",
			contains: []string{"<title>The quick fox</title>"},
		},
		{
			name:     "default title",
			input:    "## Only a subheading",
			contains: []string{"<title>Document</title>"},
		},
		{
			name:     "title is escaped",
			input:    "# A & B",
			contains: []string{"<title>A &amp; B</title>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "footnote",
			input:    "Text[^1].\n\n[^1]: Note.",
			contains: []string{"footnote"},
		},
		{
			name:     "highlighted code uses inline styles",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "style="},
			excludes: []string{`class="chroma"`},
		},
		{
			name:     "raw html is not passed through",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "crlf normalized",
			input:    "line one\r\nline two\r\n",
			excludes: []string{"\r"},
		},
		{
			name:     "charset declared",
			input:    "é",
			contains: []string{`<meta charset="utf-8">`, "é"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			if !strings.HasPrefix(got, "<!DOCTYPE html>") {
				t.Errorf("output is not a standalone document: %.40q", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q\n%s", bad, got)
				}
			}
		})
	}
}

func TestToHTML_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want %v", err, context.Canceled)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"a\r\nb\rc", "a\nb\nc"},
		{"a\n\n\n\n\n\nb", "a\n\n\nb"},
		{"a\n\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
