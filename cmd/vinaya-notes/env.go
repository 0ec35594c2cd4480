package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from VINAYA_* environment variables,
// giving CI-friendly overrides without a YAML file.
type envConfig struct {
	ConfigPath string // VINAYA_CONFIG: config file name or path
	CacheDir   string // VINAYA_CACHE_DIR: response cache directory
	BaseURL    string // VINAYA_BASE_URL: corpus API host
	Translator string // VINAYA_TRANSLATOR: translation edition
	DataDir    string // VINAYA_DATA_DIR: data file override directory
	Workers    int    // VINAYA_WORKERS: prefetch pool size
}

// knownEnvVars lists valid VINAYA_* variables, used to warn on typos.
var knownEnvVars = map[string]bool{
	"VINAYA_CONFIG":     true,
	"VINAYA_CACHE_DIR":  true,
	"VINAYA_BASE_URL":   true,
	"VINAYA_TRANSLATOR": true,
	"VINAYA_DATA_DIR":   true,
	"VINAYA_WORKERS":    true,
}

// loadEnvConfig reads the recognized VINAYA_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("VINAYA_CONFIG"),
		CacheDir:   os.Getenv("VINAYA_CACHE_DIR"),
		BaseURL:    os.Getenv("VINAYA_BASE_URL"),
		Translator: os.Getenv("VINAYA_TRANSLATOR"),
		DataDir:    os.Getenv("VINAYA_DATA_DIR"),
	}
	if v := os.Getenv("VINAYA_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

// warnUnknownEnvVars flags VINAYA_* variables this build does not know,
// catching typos like VINAYA_TRANSLTOR before a long run.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "VINAYA_") && !knownEnvVars[name] {
			fmt.Fprintf(w, "Warning: unknown environment variable %s\n", name)
		}
	}
}
