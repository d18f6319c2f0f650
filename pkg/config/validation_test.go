package config

import (
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "VERBOSE"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("error should mention oneof constraint: %v", err)
	}
}

func TestValidateInvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for invalid log format")
	}
}

func TestValidateInvalidAPIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error for out-of-range API port")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("error should mention max constraint: %v", err)
	}
}

func TestValidateInvalidMetricsPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Port = -1

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for negative metrics port")
	}
}

func TestValidateInvalidSampleRate(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.SampleRate = 1.5

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for sample rate above 1.0")
	}
}

func TestValidateMissingSeedPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Domain.SeedPath = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing seed path")
	}
}

func TestValidateZeroShutdownTimeout(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.ShutdownTimeout = 0

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for zero shutdown timeout")
	}
}

func TestValidateAuthRequiresSecret(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Auth.Enabled = true

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error when auth is enabled without a secret")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error should name jwt_secret: %v", err)
	}

	cfg.Auth.JWTSecret = "s3cret"
	if err := Validate(cfg); err != nil {
		t.Errorf("auth with secret should validate: %v", err)
	}
}
