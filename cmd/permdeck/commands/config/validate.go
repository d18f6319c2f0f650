package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the PermDeck configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  permdeck config validate

  # Validate specific config file
  permdeck config validate --config /etc/permdeck/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Get config path from parent's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	// Load and validate configuration
	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	// Determine path for display
	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	// Additional validation checks
	var warnings []string

	if cfg.Auth.Enabled && cfg.Admin.PasswordHash == "" {
		warnings = append(warnings, "auth enabled but no admin password hash configured - run 'permdeck hash-password'")
	}
	if !cfg.Auth.Enabled {
		warnings = append(warnings, "API authentication disabled - anyone can mutate grants")
	}
	if _, err := os.Stat(cfg.Domain.SeedPath); err != nil {
		warnings = append(warnings, fmt.Sprintf("seed file not found: %s", cfg.Domain.SeedPath))
	}

	// Print results
	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Seed file:       %s\n", cfg.Domain.SeedPath)
	fmt.Printf("  API port:        %d\n", cfg.API.Port)
	fmt.Printf("  Log level:       %s\n", cfg.Logging.Level)

	return nil
}
