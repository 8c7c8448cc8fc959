package wkhtmlapp

import "fmt"

// Flow identifies how input reaches the external tool.
type Flow int

const (
	FlowFile Flow = iota + 1 // local file path
	FlowURL                  // network address
	FlowHTML                 // inline markup streamed on stdin
)

// String returns the flow name used in logs and metrics labels.
func (f Flow) String() string {
	switch f {
	case FlowFile:
		return "file"
	case FlowURL:
		return "url"
	case FlowHTML:
		return "html"
	default:
		return "unknown"
	}
}

// stdinMarker tells wkhtmltopdf and wkhtmltoimage to read the page from stdin.
const stdinMarker = "-"

// Input is the source of one rendering. Build it with FileInput, URLInput or
// HTMLInput; the zero value is invalid.
type Input struct {
	flow  Flow
	value string
}

// FileInput renders the page stored at path.
func FileInput(path string) Input {
	return Input{flow: FlowFile, value: path}
}

// URLInput renders the page served at addr.
func URLInput(addr string) Input {
	return Input{flow: FlowURL, value: addr}
}

// HTMLInput renders inline markup, streamed to the tool on stdin.
func HTMLInput(markup string) Input {
	return Input{flow: FlowHTML, value: markup}
}

// Flow returns the delivery strategy of the input.
func (in Input) Flow() Flow {
	return in.flow
}

// Value returns the path, address or markup carried by the input.
func (in Input) Value() string {
	return in.value
}

// String describes the input without dumping inline markup.
func (in Input) String() string {
	switch in.flow {
	case FlowFile, FlowURL:
		return fmt.Sprintf("%s(%s)", in.flow, in.value)
	case FlowHTML:
		return fmt.Sprintf("html(%d bytes)", len(in.value))
	default:
		return "invalid input"
	}
}

// validate rejects the zero Input and empty file paths or addresses.
func (in Input) validate() error {
	switch in.flow {
	case FlowFile, FlowURL:
		if in.value == "" {
			return renderingError(ErrInvalidInput, "empty %s input", in.flow)
		}
		return nil
	case FlowHTML:
		return nil
	default:
		return renderingError(ErrInvalidInput, "input has no source")
	}
}
