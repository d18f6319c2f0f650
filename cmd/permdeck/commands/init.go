package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample PermDeck configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/permdeck/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  permdeck init

  # Initialize with custom path
  permdeck init --config /etc/permdeck/config.yaml

  # Force overwrite existing config
  permdeck init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file and point domain.seed_path at your seed file")
	fmt.Println("  2. Start the server with: permdeck start")
	fmt.Printf("  3. Or specify custom config: permdeck start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  Authentication is disabled by default. To enable it, set auth.enabled,")
	fmt.Println("  provide a JWT secret, and store an admin password hash:")
	fmt.Println("    export PERMDECK_AUTH_JWT_SECRET=$(openssl rand -hex 32)")
	fmt.Println("    permdeck hash-password")

	return nil
}
