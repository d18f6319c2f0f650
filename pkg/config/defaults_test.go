package config

import (
	"testing"
	"time"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level != "INFO" {
		t.Errorf("logging level = %s, want INFO", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("logging format = %s, want text", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("logging output = %s, want stdout", cfg.Logging.Output)
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("telemetry endpoint = %s, want localhost:4317", cfg.Telemetry.Endpoint)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("shutdown timeout = %s, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Domain.SeedPath == "" {
		t.Error("default seed path should be set")
	}
	if !cfg.Store.InMemory {
		t.Error("store should default to in-memory")
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %s, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("admin username = %s, want admin", cfg.Admin.Username)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestApplyDefaultsNormalizesLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("level = %s, want DEBUG", cfg.Logging.Level)
	}
}

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("level = %s, want INFO", cfg.Logging.Level)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("shutdown timeout = %s, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.API.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %s, want 10s", cfg.API.ReadTimeout)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("sample rate = %f, want 1.0", cfg.Telemetry.SampleRate)
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.API.Port = 9000
	cfg.ShutdownTimeout = 5 * time.Second
	cfg.Auth.TokenTTL = time.Hour

	ApplyDefaults(cfg)

	if cfg.API.Port != 9000 {
		t.Errorf("api port = %d, want 9000", cfg.API.Port)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("shutdown timeout = %s, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("token ttl = %s, want 1h", cfg.Auth.TokenTTL)
	}
}

func TestApplyDefaultsMetricsPort(t *testing.T) {
	cfg := &Config{}
	cfg.Metrics.Enabled = true
	ApplyDefaults(cfg)

	if cfg.Metrics.Port != 9090 {
		t.Errorf("metrics port = %d, want 9090", cfg.Metrics.Port)
	}
}

func TestApplyDefaultsStoreInMemory(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if !cfg.Store.InMemory {
		t.Error("empty store path should default to in-memory")
	}

	cfg = &Config{}
	cfg.Store.Path = "/var/lib/permdeck/store"
	ApplyDefaults(cfg)
	if cfg.Store.InMemory {
		t.Error("explicit store path should keep disk persistence")
	}
}
