package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-wkhtmlapp"
	"github.com/alnah/go-wkhtmlapp/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxOptionValueLength = 2048
	MaxWorkers           = 64
)

// appDirName is the per-user config directory name.
const appDirName = "wkhtmlapp"

// Config holds settings for both tools. Zero values mean "use the library
// default", so an empty file is valid.
type Config struct {
	WorkDir     string      `yaml:"workDir"`
	Debug       bool        `yaml:"debug"`
	Timeout     string      `yaml:"timeout"` // Go duration, e.g. "90s"
	Verify      bool        `yaml:"verify"`
	Workers     int         `yaml:"workers"` // 0 = auto
	MetricsFile string      `yaml:"metricsFile"`
	PDF         ToolConfig  `yaml:"pdf"`
	Image       ImageConfig `yaml:"image"`
}

// ToolConfig configures wkhtmltopdf.
type ToolConfig struct {
	Binary  string            `yaml:"binary"`
	Options map[string]string `yaml:"options"`
}

// ImageConfig configures wkhtmltoimage.
type ImageConfig struct {
	Binary  string            `yaml:"binary"`
	Format  string            `yaml:"format"` // jpg, png, bmp, svg
	Options map[string]string `yaml:"options"`
}

// Validate checks option names against the tool allowlists, value lengths
// and numeric ranges. Called automatically by LoadConfig, but available for
// consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("workDir", c.WorkDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("metricsFile", c.MetricsFile, MaxPathLength); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if err := validateFieldLength("pdf.binary", c.PDF.Binary, MaxPathLength); err != nil {
		return err
	}
	if err := validateOptions("pdf", wkhtmlapp.ToolPDF, c.PDF.Options); err != nil {
		return err
	}

	if err := validateFieldLength("image.binary", c.Image.Binary, MaxPathLength); err != nil {
		return err
	}
	if c.Image.Format != "" {
		if _, err := wkhtmlapp.ParseFormat(c.Image.Format); err != nil {
			return fmt.Errorf("%w: image.format %q (must be one of %s)", ErrInvalidValue, c.Image.Format, formatList())
		}
	}
	return validateOptions("image", wkhtmlapp.ToolImage, c.Image.Options)
}

// TimeoutDuration parses Timeout. An empty value means no limit.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// validateOptions rejects names outside the tool's allowlist, in sorted order
// so the reported name is stable.
func validateOptions(section string, tool wkhtmlapp.Tool, opts map[string]string) error {
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if !wkhtmlapp.Allowed(tool, name) {
			return fmt.Errorf("%w: %s.options: unknown option %q (see 'wkhtmlapp options %s')", ErrInvalidValue, section, name, tool)
		}
		field := section + ".options." + name
		if err := validateFieldLength(field, opts[name], MaxOptionValueLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(wkhtmlapp.Formats()))
	for _, f := range wkhtmlapp.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// DefaultConfig returns a configuration that defers everything to the
// library and environment defaults.
func DefaultConfig() *Config {
	return &Config{
		PDF:   ToolConfig{Options: map[string]string{}},
		Image: ImageConfig{Options: map[string]string{}},
	}
}

// LoadConfig loads a configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it searches for nameOrPath.yaml or nameOrPath.yml in the
// current directory, then in the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, yamlutil.ErrNilData) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/wkhtmlapp/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
