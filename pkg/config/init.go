package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the commented configuration file written by 'permdeck init'.
const sampleConfig = `# PermDeck Configuration File
#
# This file configures the PermDeck permission server.
# Values can be overridden with PERMDECK_* environment variables,
# e.g. PERMDECK_LOGGING_LEVEL=DEBUG.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: INFO
  # Output format: text (colored on terminals) or json
  format: text
  # Where logs are written: stdout, stderr, or a file path
  output: stdout

# OpenTelemetry distributed tracing (opt-in)
telemetry:
  enabled: false
  endpoint: localhost:4317
  insecure: true
  sample_rate: 1.0

# Maximum time to wait for graceful shutdown
shutdown_timeout: 30s

# Prometheus metrics HTTP server (opt-in)
metrics:
  enabled: false
  port: 9090

# Management API server
api:
  port: 8080
  read_timeout: 10s
  write_timeout: 10s
  idle_timeout: 60s
  request_timeout: 30s

# ACL domain seed
domain:
  # YAML file describing principals, files, and initial grants (required)
  seed_path: /etc/permdeck/domain.yaml
  # Reload the domain when the seed file changes on disk
  watch: true

# Domain snapshot persistence
store:
  # BadgerDB directory; leave empty for an in-memory store
  path: ""
  in_memory: true

# API authentication (opt-in)
auth:
  enabled: false
  # Secret used to sign bearer tokens; required when enabled
  jwt_secret: ""
  token_ttl: 24h

# Admin credential for the API login endpoint
admin:
  username: admin
  # bcrypt hash of the admin password; set by 'permdeck init --password'
  password_hash: ""
`

// InitConfig writes the sample configuration to the default location.
// Returns the path written. Refuses to overwrite an existing file unless
// force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes the sample configuration to an explicit path.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
