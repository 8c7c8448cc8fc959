package wkhtmlapp

import "sort"

// Positional object markers. They are emitted bare, never as --flags.
const (
	markerCover = "cover"
	markerTOC   = "toc"
)

// Tool selects which wkhtml binary an option table targets.
type Tool int

const (
	ToolPDF Tool = iota + 1
	ToolImage
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolPDF:
		return "pdf"
	case ToolImage:
		return "image"
	default:
		return "unknown"
	}
}

// pdfOptionNames lists every option accepted by wkhtmltopdf.
var pdfOptionNames = []string{
	// Global options
	"collate",
	"no-collate",
	"cookie-jar",
	"copies",
	"dpi",
	"extended-help",
	"grayscale",
	"help",
	"htmldoc",
	"ignore-load-errors",
	"image-dpi",
	"image-quality",
	"license",
	"log-level",
	"lowquality",
	"manpage",
	"margin-bottom",
	"margin-left",
	"margin-right",
	"margin-top",
	"orientation",
	"page-height",
	"page-size",
	"page-width",
	"no-pdf-compression",
	"quiet",
	"read-args-from-stdin",
	"readme",
	"title",
	"use-xserver",
	"version",
	// Outline options
	"dump-default-toc-xsl",
	"dump-outline",
	"outline",
	"no-outline",
	"outline-depth",
	"output-format",
	// Page options
	"allow",
	"background",
	"no-background",
	"bypass-proxy-for",
	"cache-dir",
	"checkbox-checked-svg",
	"checkbox-svg",
	"cookie",
	"custom-header",
	"custom-header-propagation",
	"no-custom-header-propagation",
	"debug-javascript",
	"no-debug-javascript",
	"default-header",
	"encoding",
	"disable-external-links",
	"enable-external-links",
	"disable-forms",
	"enable-forms",
	"images",
	"no-images",
	"disable-internal-links",
	"enable-internal-links",
	"disable-javascript",
	"enable-javascript",
	"javascript-delay",
	"keep-relative-links",
	"load-error-handling",
	"load-media-error-handling",
	"disable-local-file-access",
	"enable-local-file-access",
	"minimum-font-size",
	"exclude-from-outline",
	"include-in-outline",
	"page-offset",
	"password",
	"disable-plugins",
	"enable-plugins",
	"post",
	"post-file",
	"print-media-type",
	"no-print-media-type",
	"proxy",
	"proxy-hostname-lookup",
	"radiobutton-checked-svg",
	"radiobutton-svg",
	"redirect-delay",
	"resolve-relative-links",
	"run-script",
	"disable-smart-shrinking",
	"enable-smart-shrinking",
	"ssl-crt-path",
	"ssl-key-password",
	"ssl-key-path",
	"stop-slow-scripts",
	"no-stop-slow-scripts",
	"disable-toc-back-links",
	"enable-toc-back-links",
	"user-style-sheet",
	"username",
	"viewport-size",
	"window-status",
	"zoom",
	// Headers and footer options
	"footer-center",
	"footer-font-name",
	"footer-font-size",
	"footer-html",
	"footer-left",
	"footer-line",
	"no-footer-line",
	"footer-right",
	"footer-spacing",
	"header-center",
	"header-font-name",
	"header-font-size",
	"header-html",
	"header-left",
	"header-line",
	"no-header-line",
	"header-right",
	"header-spacing",
	"replace",
	// Cover object
	"cover",
	// TOC object
	"toc",
	// TOC options
	"disable-dotted-lines",
	"toc-depth",
	"toc-font-name",
	"toc-l1-font-size",
	"toc-header-text",
	"toc-header-font-name",
	"toc-header-font-size",
	"toc-level-indentation",
	"disable-toc-links",
	"toc-text-size-shrink",
	"xsl-style-sheet",
}

// imageOptionNames lists every option accepted by wkhtmltoimage.
var imageOptionNames = []string{
	// Page, crop, quality and format options
	"allow",
	"bypass-proxy-for",
	"cache-dir",
	"checkbox-checked-svg",
	"checked-svg",
	"cookie",
	"cookie-jar",
	"crop-h",
	"crop-w",
	"crop-x",
	"crop-y",
	"custom-header",
	"custom-header-propagation",
	"no-custom-header-propagation",
	"debug-javascript",
	"no-debug-javascript",
	"encoding",
	"format",
	"height",
	"images",
	"no-images",
	"disable-javascript",
	"enable-javascript",
	"javascript-delay",
	"load-error-handling",
	"load-media-error-handling",
	"disable-local-file-access",
	"enable-local-file-access",
	"minimum-font-size",
	"password",
	"disable-plugins",
	"enable-plugins",
	"post",
	"post-file",
	"proxy",
	"quality",
	"quiet",
	"radiobutton-checked-svg",
	"radiobutton-svg",
	"run-script",
	"disable-smart-width",
	"enable-smart-width",
	"stop-slow-scripts",
	"no-stop-slow-scripts",
	"transparent",
	"use-xserver",
	"user-style-sheet",
	"username",
	"width",
	"window-status",
	"zoom",
}

var allowlists = map[Tool]map[string]struct{}{
	ToolPDF:   toSet(pdfOptionNames),
	ToolImage: toSet(imageOptionNames),
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Allowed reports whether name is a valid option for tool.
func Allowed(tool Tool, name string) bool {
	_, ok := allowlists[tool][name]
	return ok
}

// AllowedNames returns the sorted allowlist for tool.
func AllowedNames(tool Tool) []string {
	set := allowlists[tool]
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
