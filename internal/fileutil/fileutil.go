// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNameSeparator = errors.New("name contains path separator or null byte")
	ErrNotDirectory  = errors.New("path exists but is not a directory")
	ErrNotWritable   = errors.New("directory is not writable")
	ErrEmptyPath     = errors.New("path cannot be empty")
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// EnsureDir creates dir (and parents) if missing, then checks that it is a
// directory the current process can create files in.
func EnsureDir(dir string) error {
	if dir == "" {
		return ErrEmptyPath
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	return checkWritable(dir)
}

// checkWritable probes dir by creating and removing a temporary file.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".wkhtmlapp-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

// ValidateName checks that a logical output name cannot escape its
// directory. Empty names are accepted.
func ValidateName(name string) error {
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrNameSeparator, name)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsMarkdown returns true if path has a markdown extension (case-insensitive).
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// BaseName returns the file name of path without directory and extension.
//
// Examples:
//   - "docs/report.html" -> "report"
//   - "index.md" -> "index"
//   - "archive.tar.gz" -> "archive.tar"
//   - "README" -> "README"
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
