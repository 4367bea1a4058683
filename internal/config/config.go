// Package config loads chunker settings from a project-local YAML file and
// environment variables, mirroring the fresh-instance-per-load viper pattern
// used elsewhere in the ecosystem.
package config

// Config is the on-disk/environment-driven configuration for a chunker
// deployment.
type Config struct {
	Version              int      `mapstructure:"version" yaml:"version"`
	MaxChars             int      `mapstructure:"max_chars" yaml:"max_chars"`
	Coalesce             int      `mapstructure:"coalesce" yaml:"coalesce"`
	IncludeTokens        bool     `mapstructure:"include_tokens" yaml:"include_tokens"`
	GenerateDescriptions bool     `mapstructure:"generate_descriptions" yaml:"generate_descriptions"`
	FallbackChunkSize    int      `mapstructure:"fallback_chunk_size" yaml:"fallback_chunk_size"`
	FallbackOverlap      int      `mapstructure:"fallback_overlap" yaml:"fallback_overlap"`
	Concurrency          int      `mapstructure:"concurrency" yaml:"concurrency"`
	LanguageOverridesFile string  `mapstructure:"language_overrides_file" yaml:"language_overrides_file"`
	ExcludePatterns      []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Version:           1,
		MaxChars:          1500,
		Coalesce:          100,
		FallbackChunkSize: 40,
		FallbackOverlap:   15,
		Concurrency:       5,
	}
}
