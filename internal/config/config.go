// Package config loads generator configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obu-labs/vinaya-notes/internal/fileutil"
	"github.com/obu-labs/vinaya-notes/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Config holds all settings of a generation run.
type Config struct {
	Corpus CorpusConfig `yaml:"corpus"`
	Output OutputConfig `yaml:"output"`
	Run    RunConfig    `yaml:"run"`
}

// CorpusConfig selects the corpus source and cache behavior.
type CorpusConfig struct {
	BaseURL      string `yaml:"baseURL"`      // API host (default: production SuttaCentral)
	Translator   string `yaml:"translator"`   // translation edition (default: brahmali)
	CacheDir     string `yaml:"cacheDir"`     // response cache location (empty = user cache dir)
	CacheTTLDays int    `yaml:"cacheTTLDays"` // rule text freshness (default: 14)
}

// OutputConfig selects the vault destination and data overrides.
type OutputConfig struct {
	Dir     string `yaml:"dir"`     // vault root; must not exist yet
	DataDir string `yaml:"dataDir"` // overrides the embedded data files per file
}

// RunConfig tunes run behavior.
type RunConfig struct {
	Workers       int  `yaml:"workers"` // prefetch pool size (0 = auto)
	SkipBhikkhuni bool `yaml:"skipBhikkhuni"`
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Corpus.CacheTTLDays < 0 {
		return fmt.Errorf("%w: corpus.cacheTTLDays must not be negative, got %d",
			ErrInvalidValue, c.Corpus.CacheTTLDays)
	}
	if c.Run.Workers < 0 {
		return fmt.Errorf("%w: run.workers must not be negative, got %d",
			ErrInvalidValue, c.Run.Workers)
	}
	if c.Corpus.BaseURL != "" && !strings.HasPrefix(c.Corpus.BaseURL, "http") {
		return fmt.Errorf("%w: corpus.baseURL must be an http(s) URL, got %q",
			ErrInvalidValue, c.Corpus.BaseURL)
	}
	return nil
}

// DefaultConfig returns the zero-surprise defaults.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Translator:   "brahmali",
			CacheTTLDays: 14,
		},
	}
}

// LoadConfig loads configuration from a file path or a config name. A
// value containing a path separator is treated as a path; otherwise it is
// searched as a name in standard locations. A named config that cannot be
// found is an error, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name, trying .yaml then
// .yml, in the current directory and then the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "vinaya-notes", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
