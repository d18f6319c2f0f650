package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/internal/cli/prompt"
	"github.com/permdeck/permdeck/pkg/api/auth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Generate an admin password hash",
	Long: `Generate a bcrypt hash for the admin password.

The hash goes into the admin.password_hash field of the configuration
file. The plaintext password is never stored.

Examples:
  # Prompt for a password and print its hash
  permdeck hash-password`,
	RunE: runHashPassword,
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	password, err := prompt.PasswordWithConfirmation("Admin password", "Confirm password", 8)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil
		}
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Println("\nAdd this to your configuration file:")
	fmt.Println("\nadmin:")
	fmt.Println("  username: admin")
	fmt.Printf("  password_hash: \"%s\"\n", hash)

	return nil
}
