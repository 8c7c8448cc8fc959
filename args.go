package wkhtmlapp

// Literal option values with special meaning.
const (
	valueTrue  = "true"
	valueFalse = "false"
)

// BuildArgs serializes an option table into command-line tokens.
//
// Dashed flags come first in ascending name order, followed by the cover and
// toc markers. Values are passed verbatim as single argv elements; no shell
// quoting is involved.
func BuildArgs(opts *Options) []string {
	if opts == nil {
		return nil
	}

	args := make([]string, 0, 2*opts.Len())
	var markers []string

	for _, name := range opts.Names() {
		value := opts.values[name]
		if value == "" || value == valueFalse {
			continue
		}
		if isMarker(name) {
			// Value is ignored for positional objects.
			continue
		}
		if value == valueTrue {
			args = append(args, "--"+name)
			continue
		}
		args = append(args, "--"+name, value)
	}

	for _, name := range []string{markerCover, markerTOC} {
		value, ok := opts.values[name]
		if !ok || value == "" || value == valueFalse {
			continue
		}
		markers = append(markers, name)
	}

	return append(args, markers...)
}

func isMarker(name string) bool {
	return name == markerCover || name == markerTOC
}
