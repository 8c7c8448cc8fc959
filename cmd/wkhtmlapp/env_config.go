package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-wkhtmlapp"
)

// CLI-only environment variables. The library reads the others itself.
const (
	envConfigPath = "WKHTMLAPP_CONFIG"
	envTimeout    = "WKHTMLAPP_TIMEOUT"
	envWorkers    = "WKHTMLAPP_WORKERS"
	envPrefix     = "WKHTMLAPP_"
)

// dotEnvFile is loaded from the current directory when present.
const dotEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // WKHTMLAPP_CONFIG: config file path
	Timeout    time.Duration // WKHTMLAPP_TIMEOUT: per-invocation timeout
	Workers    int           // WKHTMLAPP_WORKERS: concurrent invocations
	WorkDir    string        // WKHTMLAPP_WORK_DIR: artifact directory
	Debug      bool          // WKHTMLAPP_DEBUG: debug logging, streamed URL stderr
	PDFBinary  string        // WKHTMLTOPDF_CMD
	ImgBinary  string        // WKHTMLTOIMG_CMD
}

// knownEnvVars lists valid WKHTMLAPP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:        true,
	envTimeout:           true,
	envWorkers:           true,
	wkhtmlapp.EnvWorkDir: true,
	wkhtmlapp.EnvDebug:   true,
}

// loadDotEnv loads KEY=VALUE pairs from path without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// loadEnvConfig reads configuration from environment variables. Malformed
// numeric values are reported on w and ignored.
func loadEnvConfig(getenv func(string) string, w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv(envConfigPath),
		WorkDir:    getenv(wkhtmlapp.EnvWorkDir),
		PDFBinary:  getenv(wkhtmlapp.EnvPDFCommand),
		ImgBinary:  getenv(wkhtmlapp.EnvImgCommand),
	}

	if v := getenv(wkhtmlapp.EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			fmt.Fprintf(w, "warning: ignoring %s=%q (want true or false)\n", wkhtmlapp.EnvDebug, v)
		}
		cfg.Debug = debug
	}

	if v := getenv(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			fmt.Fprintf(w, "warning: ignoring %s=%q (want a positive duration like 90s)\n", envTimeout, v)
		} else {
			cfg.Timeout = d
		}
	}

	if v := getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fmt.Fprintf(w, "warning: ignoring %s=%q (want a positive integer)\n", envWorkers, v)
		} else {
			cfg.Workers = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized WKHTMLAPP_* variables.
// Helps catch typos like WKHTMLAPP_WORKDIR instead of WKHTMLAPP_WORK_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}
