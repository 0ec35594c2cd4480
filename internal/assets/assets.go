// Package assets embeds the data files a generation run needs: the
// default corpus-correction tables, rule name listings, the glossary
// index, and the companion translation index. Each can be overridden by a
// file of the same name in a user-supplied data directory.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed data/*
var data embed.FS

// ErrAssetNotFound reports a data file missing from both the override
// directory and the embedded defaults.
var ErrAssetNotFound = errors.New("asset not found")

// Asset file names.
const (
	OverridesFile  = "overrides.yaml"
	RuleNamesFile  = "rulenames.yaml"
	GlossaryFile   = "glossary.yaml"
	CompanionsFile = "companions.yaml"
)

// Load returns the embedded data file by name.
func Load(name string) ([]byte, error) {
	content, err := data.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	return content, nil
}

// LoadFrom returns the data file by name, preferring a copy in dir over
// the embedded default. An empty dir always resolves to the default.
func LoadFrom(dir, name string) ([]byte, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path) // #nosec G304 -- dir is the operator's own data directory
		if err == nil {
			return content, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return Load(name)
}
