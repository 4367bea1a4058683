package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the name of the config file without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// ChunkerDir is the name of the project-local configuration directory.
	ChunkerDir = ".chunkweave"
)

// Loader handles configuration loading for a single project root.
type Loader struct {
	projectRoot string
	v           *viper.Viper
}

// NewLoader creates a config loader rooted at projectRoot.
func NewLoader(projectRoot string) *Loader {
	return &Loader{projectRoot: projectRoot}
}

// ConfigPath returns the full path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.projectRoot, ChunkerDir, ConfigFileName+"."+ConfigFileExt)
}

// Exists reports whether a config file is present at the expected location.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.ConfigPath())
	return err == nil
}

// Load reads configuration from disk and environment variables. A fresh
// viper instance is created on every call to avoid carrying stale state
// across repeated loads within a long-lived process.
func (l *Loader) Load() (*Config, error) {
	l.v = viper.New()
	l.v.SetEnvPrefix("CHUNKER")
	l.v.AutomaticEnv()
	// GENERATE_AI_DESCRIPTIONS has no CHUNKER_ prefix in the wild, unlike
	// every other knob, so it needs an explicit bind.
	_ = l.v.BindEnv("generate_descriptions", "GENERATE_AI_DESCRIPTIONS")
	// AutomaticEnv alone does not make Unmarshal see a key that is absent
	// from the config file, so the CHUNKER_-prefixed knobs are bound too.
	for _, key := range []string{"max_chars", "coalesce", "include_tokens", "fallback_chunk_size", "fallback_overlap", "concurrency", "language_overrides_file"} {
		_ = l.v.BindEnv(key)
	}

	if l.Exists() {
		l.v.SetConfigFile(l.ConfigPath())
		l.v.SetConfigType(ConfigFileExt)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from disk, or returns the default
// configuration untouched if no config file and no environment overrides
// are present.
func (l *Loader) LoadOrDefault() (*Config, error) {
	return l.Load()
}
