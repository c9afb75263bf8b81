package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Engine.AdminURL != "http://localhost:8888" {
		t.Errorf("Expected default admin URL 'http://localhost:8888', got %q", cfg.Engine.AdminURL)
	}
	if cfg.Engine.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", cfg.Engine.Timeout)
	}

	if cfg.Serve.Port != 8500 {
		t.Errorf("Expected default port 8500, got %d", cfg.Serve.Port)
	}
	if cfg.Serve.Host != "0.0.0.0" {
		t.Errorf("Expected default host '0.0.0.0', got %q", cfg.Serve.Host)
	}
	if !cfg.Serve.Watch {
		t.Error("Expected watch to default to true")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Expected default log format 'console', got %q", cfg.Logging.Format)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
engine:
  adminUrl: http://engine.internal:9999
  timeout: 5s
serve:
  port: 9000
logging:
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.AdminURL != "http://engine.internal:9999" {
		t.Errorf("Expected overridden admin URL, got %q", cfg.Engine.AdminURL)
	}
	if cfg.Engine.Timeout != 5*time.Second {
		t.Errorf("Expected overridden timeout 5s, got %v", cfg.Engine.Timeout)
	}
	if cfg.Serve.Port != 9000 {
		t.Errorf("Expected overridden port 9000, got %d", cfg.Serve.Port)
	}

	// Unset values keep defaults
	if cfg.Serve.Host != "0.0.0.0" {
		t.Errorf("Expected default host to survive partial config, got %q", cfg.Serve.Host)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level to survive partial config, got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
