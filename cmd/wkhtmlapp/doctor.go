package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wkhtmlapp"
	"github.com/alnah/go-wkhtmlapp/internal/config"
	"github.com/alnah/go-wkhtmlapp/internal/fileutil"
	"github.com/alnah/go-wkhtmlapp/internal/yamlutil"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Tools    []toolInfo `json:"tools"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Config   string     `json:"config,omitempty"` // effective config as YAML
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one wkhtml binary.
type toolInfo struct {
	Name    string `json:"name"`
	Binary  string `json:"binary"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Display       bool   `json:"display"`
}

// systemInfo holds system check results.
type systemInfo struct {
	WorkDir         string `json:"work_dir"`
	WorkDirWritable bool   `json:"work_dir_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	result := runDoctor(flags.config, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	envCfg := loadEnvConfig(env.Getenv, io.Discard)
	cfg := config.DefaultConfig()
	if name := cmp.Or(configName, envCfg.ConfigPath); name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		} else {
			cfg = loaded
		}
	}

	checkTool(result, env, "wkhtmltopdf", cmp.Or(envCfg.PDFBinary, cfg.PDF.Binary, wkhtmlapp.DefaultPDFBinary), wkhtmlapp.EnvPDFCommand)
	checkTool(result, env, "wkhtmltoimage", cmp.Or(envCfg.ImgBinary, cfg.Image.Binary, wkhtmlapp.DefaultImageBinary), wkhtmlapp.EnvImgCommand)
	checkEnvironment(result, env)
	checkWorkDir(result, cmp.Or(envCfg.WorkDir, cfg.WorkDir, wkhtmlapp.DefaultWorkDir()))

	if out, err := yamlutil.Marshal(cfg); err == nil {
		result.Config = string(out)
	}

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkTool locates binary and asks it for its version.
func checkTool(result *doctorResult, env *Environment, name, binary, envVar string) {
	info := toolInfo{Name: name, Binary: binary}
	defer func() { result.Tools = append(result.Tools, info) }()

	path, err := env.LookPath(binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install wkhtmltopdf or set %s", binary, envVar))
		return
	}
	info.Found = true
	info.Path = path

	version, err := env.ProbeVersion(path)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s is not usable: %v", path, err))
		return
	}
	info.Version = version

	if !strings.Contains(strings.ToLower(version), "patched qt") {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s is not built with patched Qt; headers, footers and outlines are unavailable", name))
	}
}

// checkEnvironment detects container, CI and display availability.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	result.Env.Display = runtime.GOOS != "linux" || env.Getenv("DISPLAY") != ""
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	// Explicit override (highest priority)
	if getenv("WKHTMLAPP_CONTAINER") == "1" {
		return true, "WKHTMLAPP_CONTAINER=1"
	}
	// Docker
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkWorkDir verifies the artifact directory can be created and written.
func checkWorkDir(result *doctorResult, dir string) {
	result.System.WorkDir = dir
	if err := fileutil.EnsureDir(dir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Working directory not usable: %v", err))
		return
	}
	result.System.WorkDirWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "wkhtmlapp doctor")
	fmt.Fprintln(w)

	// Tools section
	fmt.Fprintln(w, "Tools")
	for _, t := range r.Tools {
		if !t.Found {
			fmt.Fprintf(w, "  [ERROR] %s: not found (%s)\n", t.Name, t.Binary)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %s\n", t.Name, t.Path)
		if t.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
		}
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if !r.Env.Display {
		fmt.Fprintln(w, "  [OK] Display: none (needs a patched-Qt build or xvfb-run)")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.WorkDirWritable {
		fmt.Fprintf(w, "  [OK] Working directory: %s\n", r.System.WorkDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Working directory: %s\n", r.System.WorkDir)
	}
	fmt.Fprintln(w)

	// Config section
	if r.Config != "" {
		fmt.Fprintln(w, "Effective config")
		for line := range strings.Lines(r.Config) {
			fmt.Fprintf(w, "  %s", line)
		}
		fmt.Fprintln(w)
	}

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
