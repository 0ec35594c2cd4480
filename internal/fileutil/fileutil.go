// Package fileutil provides file and path helpers for vault output.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutputExists reports an output directory that already has content;
// the generator refuses to overwrite an existing vault.
var ErrOutputExists = errors.New("output directory already exists")

// EnsureFreshDir creates dir, failing if it already exists. The vault is
// regenerated from scratch every run; stale files from a previous run
// must not survive into a new one.
func EnsureFreshDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s (remove it and re-run)", ErrOutputExists, dir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// WriteDocument writes content to path, creating parent directories as
// needed.
func WriteDocument(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
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

// IsFilePath returns true if the string looks like a file path rather
// than a bare name (contains a path separator).
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// Stem returns the file name without directory or extension, the form
// used for document titles and registry names.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
