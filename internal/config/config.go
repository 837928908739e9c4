// Package config handles loading and saving arscenario configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Name       string           `yaml:"name"`
	Version    string           `yaml:"version"`
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LLMConfig configures the generator collaborator.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai or gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// GenerationConfig configures scenario generation and repair.
type GenerationConfig struct {
	StrictValidation    bool `yaml:"strict_validation"`
	MaxRepairAttempts   int  `yaml:"max_repair_attempts"`
	IncludeFewShot      bool `yaml:"include_few_shot"`
	FewShotCount        int  `yaml:"few_shot_count"`
	IncludeFullSchemas  bool `yaml:"include_full_schemas"`
	RandomizePayer      bool `yaml:"randomize_payer"`
	RandomizeComplexity bool `yaml:"randomize_complexity"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "arscenario",
		Version: "0.1.0",
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-5",
			Timeout:  "3m",
		},
		Generation: GenerationConfig{
			StrictValidation:   false,
			MaxRepairAttempts:  3,
			IncludeFewShot:     true,
			FewShotCount:       1,
			IncludeFullSchemas: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file, applying defaults for missing
// fields and environment overrides for credentials. A missing file is not an
// error; defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets environment variables supply credentials so keys
// never have to live in the config file.
func (c *Config) applyEnvOverrides() {
	switch c.LLM.Provider {
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	default:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Timeout != "" {
		if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
			return fmt.Errorf("invalid llm timeout %q: %w", c.LLM.Timeout, err)
		}
	}
	if c.Generation.MaxRepairAttempts < 0 {
		return fmt.Errorf("max_repair_attempts must be >= 0")
	}
	if c.Generation.FewShotCount < 0 {
		return fmt.Errorf("few_shot_count must be >= 0")
	}
	return nil
}

// TimeoutOr returns the parsed LLM timeout, or the fallback when unset or
// unparseable.
func (c *LLMConfig) TimeoutOr(fallback time.Duration) time.Duration {
	if c.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fallback
	}
	return d
}
