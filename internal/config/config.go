package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds the external matching engine's admin API settings
type EngineConfig struct {
	AdminURL string        `yaml:"adminUrl"` // Base URL of the engine admin API
	Timeout  time.Duration `yaml:"timeout"`  // Per-request timeout
}

// ServeConfig holds settings for the simulation viewer server
type ServeConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Watch bool   `yaml:"watch"` // Reload and broadcast on simulation file changes
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			AdminURL: "http://localhost:8888",
			Timeout:  10 * time.Second,
		},
		Serve: ServeConfig{
			Host:  "0.0.0.0",
			Port:  8500,
			Watch: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file, layered over defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
