package wkhtmlapp

import (
	"cmp"
	"context"
	"os"
)

// facade is the scaffolding shared by PDF and Image: one Runner plus one
// option table scoped to the tool's allowlist.
type facade struct {
	runner  *Runner
	options *Options
}

// newFacade resolves the binary (option, then env, then default) and
// bootstraps its runner.
func newFacade(tool Tool, envVar, defaultBinary string, opts []Option) (*facade, error) {
	s := newSettings(opts)
	s.binary = cmp.Or(s.binary, os.Getenv(envVar), defaultBinary)

	runner, err := newRunner(s)
	if err != nil {
		return nil, err
	}
	return &facade{runner: runner, options: NewOptions(tool)}, nil
}

// SetArg sets one option. An empty value clears it. Names outside the tool's
// allowlist fail with a service error wrapping ErrInvalidOption.
func (f *facade) SetArg(name, value string) error {
	return f.options.Set(name, value)
}

// SetArgs sets several options at once; on any invalid name nothing is applied.
func (f *facade) SetArgs(args map[string]string) error {
	return f.options.SetMany(args)
}

// SetWorkDir changes the artifact directory for subsequent runs.
func (f *facade) SetWorkDir(dir string) error {
	return f.runner.SetWorkDir(dir)
}

// WorkDir returns the artifact directory.
func (f *facade) WorkDir() string {
	return f.runner.WorkDir()
}

// Runner returns the underlying process runner.
func (f *facade) Runner() *Runner {
	return f.runner
}

// Options returns a copy of the current option table.
func (f *facade) Options() *Options {
	return f.options.Clone()
}

// Args returns the serialized flags the next run will use.
func (f *facade) Args() []string {
	return BuildArgs(f.options)
}

func (f *facade) run(ctx context.Context, in Input, name, ext string) (string, error) {
	return f.runner.Run(ctx, in, name+"."+ext, BuildArgs(f.options))
}
