package wkhtmlapp

import (
	"maps"
	"sort"
)

// Options is the option table of one facade: a mapping from flag name to
// value, restricted to the allowlist of its tool.
//
// An empty value means "not set". "true" emits a boolean flag, "false"
// suppresses the flag, anything else is passed as the flag's argument.
// Options is not safe for concurrent mutation.
type Options struct {
	tool   Tool
	values map[string]string
}

// NewOptions returns an empty option table scoped to tool.
func NewOptions(tool Tool) *Options {
	return &Options{tool: tool, values: make(map[string]string)}
}

// Tool returns the tool whose allowlist scopes this table.
func (o *Options) Tool() Tool {
	return o.tool
}

// Set upserts one option. Unknown names fail with a service error wrapping
// ErrInvalidOption and leave the table untouched. An empty value clears
// the option.
func (o *Options) Set(name, value string) error {
	if !Allowed(o.tool, name) {
		return serviceError(ErrInvalidOption, "Invalid option: %s", name)
	}
	if value == "" {
		delete(o.values, name)
		return nil
	}
	o.values[name] = value
	return nil
}

// SetMany applies every pair or none of them: all names are validated
// before the first value is written.
func (o *Options) SetMany(args map[string]string) error {
	// Validate in sorted order so the reported name is stable.
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !Allowed(o.tool, name) {
			return serviceError(ErrInvalidOption, "Invalid option: %s", name)
		}
	}
	for _, name := range names {
		// Cannot fail: validated above.
		_ = o.Set(name, args[name])
	}
	return nil
}

// Get returns the value of name and whether it is set.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Len returns the number of set options.
func (o *Options) Len() int {
	return len(o.values)
}

// Names returns the set option names in ascending order.
func (o *Options) Names() []string {
	names := make([]string, 0, len(o.values))
	for n := range o.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Values returns a copy of the set options.
func (o *Options) Values() map[string]string {
	return maps.Clone(o.values)
}

// Clone returns an independent copy of the table.
func (o *Options) Clone() *Options {
	return &Options{tool: o.tool, values: maps.Clone(o.values)}
}

// Reset clears every option.
func (o *Options) Reset() {
	clear(o.values)
}
