// Package config loads application settings from the environment with an
// optional YAML file overlay.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied before environment and file values.
const (
	DefaultModelName   = "claude-sonnet-4-20250514"
	DefaultMaxTokens   = 4096
	DefaultTemperature = 0.7
	DefaultDataDir     = "data"
	DefaultLogLevel    = "info"
)

// Config holds the settings shared by the example programs and agents.
type Config struct {
	// APIKey authenticates against the model provider. Falls back to
	// ANTHROPIC_API_KEY / OPENAI_API_KEY inside the provider SDKs when empty.
	APIKey string `yaml:"api_key"`
	// BaseURL overrides the provider endpoint, e.g. for compatible gateways.
	BaseURL     string  `yaml:"base_url"`
	ModelName   string  `yaml:"model_name"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	// DataDir is the root for profile and progress JSON files.
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config populated with package defaults.
func Default() *Config {
	return &Config{
		ModelName:   DefaultModelName,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		DataDir:     DefaultDataDir,
		LogLevel:    DefaultLogLevel,
	}
}

// Load builds a Config from defaults, then an optional YAML file, then
// environment variables. Later sources win. An empty path skips the file;
// a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("AGENT_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("AGENT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("AGENT_MODEL_NAME"); v != "" {
		c.ModelName = v
	}
	if v := os.Getenv("AGENT_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENT_MAX_TOKENS: %w", err)
		}
		c.MaxTokens = n
	}
	if v := os.Getenv("AGENT_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("AGENT_TEMPERATURE: %w", err)
		}
		c.Temperature = f
	}
	if v := os.Getenv("AGENT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("AGENT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}
