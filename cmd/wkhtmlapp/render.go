package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-wkhtmlapp"
	"github.com/alnah/go-wkhtmlapp/internal/config"
	"github.com/alnah/go-wkhtmlapp/internal/hints"
	"github.com/alnah/go-wkhtmlapp/internal/metrics"
)

// Sentinel errors for the render commands.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrUsage        = errors.New("invalid usage")
	ErrReadInput    = errors.New("failed to read input")
	ErrWriteMetrics = errors.New("failed to write metrics file")
	ErrBatchFailed  = errors.New("some inputs failed to render")
)

// renderSettings is the merged result of flags, environment, config file
// and defaults, in that order of precedence.
type renderSettings struct {
	binary      string
	workDir     string
	debug       bool
	timeout     time.Duration
	verify      bool
	workers     int
	metricsFile string
	format      string
	options     map[string]string
}

// runRender implements the pdf and image commands.
func runRender(ctx context.Context, tool wkhtmlapp.Tool, args []string, env *Environment) error {
	flags, inputs, err := parseRenderFlags(tool, args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}
	if flags.name != "" && len(inputs) > 1 {
		return fmt.Errorf("%w: --name needs exactly one input, got %d", ErrUsage, len(inputs))
	}

	envCfg := loadEnvConfig(env.Getenv, env.Stderr)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(cmp.Or(flags.common.config, envCfg.ConfigPath))
	if err != nil {
		return err
	}

	settings, err := resolveSettings(tool, flags, envCfg, cfg)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose || settings.debug)

	jobs, err := resolveJobs(ctx, inputs, flags.name, env.Stdin)
	if err != nil {
		return err
	}

	opts := []wkhtmlapp.Option{
		wkhtmlapp.WithBinary(settings.binary),
		wkhtmlapp.WithWorkDir(settings.workDir),
		wkhtmlapp.WithDebug(settings.debug),
		wkhtmlapp.WithTimeout(settings.timeout),
		wkhtmlapp.WithVerifyOutput(settings.verify),
		wkhtmlapp.WithLogger(logger),
		wkhtmlapp.WithDebugWriter(env.Stderr),
	}

	var recorder *metrics.Recorder
	if settings.metricsFile != "" {
		recorder = metrics.NewRecorder(prometheus.NewRegistry())
		opts = append(opts, wkhtmlapp.WithObserver(recorder))
	}

	renderer, err := env.NewRenderer(tool, opts...)
	if err != nil {
		if errors.Is(err, wkhtmlapp.ErrToolNotFound) {
			name, envVar := toolBinary(tool, settings.binary)
			return fmt.Errorf("%w%s", err, hints.ForToolNotFound(name, envVar))
		}
		if errors.Is(err, wkhtmlapp.ErrWorkDir) {
			return fmt.Errorf("%w%s", err, hints.ForWorkDir())
		}
		return err
	}

	if err := renderer.SetArgs(settings.options); err != nil {
		if errors.Is(err, wkhtmlapp.ErrInvalidOption) {
			return fmt.Errorf("%w%s", err, hints.ForInvalidOption(tool.String()))
		}
		return err
	}

	logger.Debug("rendering", "tool", tool, "inputs", len(jobs), "workers", settings.workers)

	results := renderBatch(ctx, renderer, jobs, settings.workers)
	failed := printResults(results, flags.common.quiet, env)

	if recorder != nil {
		if err := recorder.WriteTextfile(settings.metricsFile); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteMetrics, settings.metricsFile, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d: %w", ErrBatchFailed, failed, len(results), firstError(results))
	}
	return nil
}

// loadConfig loads the named config, or returns defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(strings.Split(err.Error(), ", ")))
		}
		return nil, err
	}
	return cfg, nil
}

// resolveSettings merges flags over environment over config.
func resolveSettings(tool wkhtmlapp.Tool, flags *renderFlags, envCfg *envConfig, cfg *config.Config) (*renderSettings, error) {
	s := &renderSettings{
		workDir:     cmp.Or(flags.workDir, envCfg.WorkDir, cfg.WorkDir),
		debug:       flags.debug || envCfg.Debug || cfg.Debug,
		verify:      flags.verify || cfg.Verify,
		metricsFile: cmp.Or(flags.metricsFile, cfg.MetricsFile),
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg, cfg)
	if err != nil {
		return nil, err
	}
	s.timeout = timeout

	if flags.workers < 0 {
		return nil, fmt.Errorf("%w: --workers must not be negative, got %d", ErrUsage, flags.workers)
	}
	s.workers = wkhtmlapp.ResolveWorkers(cmp.Or(flags.workers, envCfg.Workers, cfg.Workers))

	var cfgOptions map[string]string
	switch tool {
	case wkhtmlapp.ToolImage:
		s.binary = cmp.Or(flags.binary, envCfg.ImgBinary, cfg.Image.Binary)
		cfgOptions = cfg.Image.Options
	default:
		s.binary = cmp.Or(flags.binary, envCfg.PDFBinary, cfg.PDF.Binary)
		cfgOptions = cfg.PDF.Options
	}

	setOptions, err := parseSetFlags(flags.set)
	if err != nil {
		return nil, err
	}

	// Lowest to highest: config options, config format, --set, --format.
	s.options = make(map[string]string, len(cfgOptions)+len(setOptions)+1)
	maps.Copy(s.options, cfgOptions)
	if tool == wkhtmlapp.ToolImage {
		if err := setFormat(s.options, cfg.Image.Format); err != nil {
			return nil, err
		}
	}
	maps.Copy(s.options, setOptions)
	if tool == wkhtmlapp.ToolImage {
		if err := setFormat(s.options, flags.format); err != nil {
			return nil, err
		}
	}
	s.format = s.options[formatOption]

	return s, nil
}

// formatOption is the wkhtmltoimage option selecting the output format.
const formatOption = "format"

// setFormat stores the normalized image format in opts. An empty name
// leaves opts untouched.
func setFormat(opts map[string]string, name string) error {
	if name == "" {
		return nil
	}
	f, err := wkhtmlapp.ParseFormat(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	opts[formatOption] = f.String()
	return nil
}

// resolveTimeout picks the timeout: flag, then environment, then config.
// Zero means no limit.
func resolveTimeout(flagValue string, envCfg *envConfig, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid --timeout %q: %w", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return cfg.TimeoutDuration()
}

// parseSetFlags turns repeated name=value pairs into an option map. A bare
// name enables a boolean flag; "name=" clears an option set by the config.
func parseSetFlags(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimLeft(strings.TrimSpace(name), "-")
		if name == "" {
			return nil, fmt.Errorf("%w: --set %q has no option name", ErrUsage, pair)
		}
		if !found {
			value = "true"
		}
		out[name] = value
	}
	return out, nil
}

// toolBinary returns the binary shown in hints and its override variable.
func toolBinary(tool wkhtmlapp.Tool, configured string) (string, string) {
	if tool == wkhtmlapp.ToolImage {
		return cmp.Or(configured, wkhtmlapp.DefaultImageBinary), wkhtmlapp.EnvImgCommand
	}
	return cmp.Or(configured, wkhtmlapp.DefaultPDFBinary), wkhtmlapp.EnvPDFCommand
}
