package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/credentials"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a context",
	Long: `Delete a saved server context and its stored credentials.

Examples:
  # Delete context named "staging"
  permdeckctl context delete staging

  # Delete without confirmation
  permdeckctl context delete staging --force`,
	Args: cobra.ExactArgs(1),
	RunE: runContextDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runContextDelete(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	return cmdutil.RunDeleteWithConfirmation("context", contextName, deleteForce, func() error {
		if err := store.DeleteContext(contextName); err != nil {
			if err == credentials.ErrContextNotFound {
				return fmt.Errorf("context '%s' not found", contextName)
			}
			return fmt.Errorf("failed to delete context: %w", err)
		}
		return nil
	})
}
