package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/internal/cli/credentials"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a context",
	Long: `Rename a saved server context.

If the renamed context is the current context, it stays current under
its new name.

Examples:
  # Rename "default" to "staging"
  permdeckctl context rename default staging`,
	Args: cobra.ExactArgs(2),
	RunE: runContextRename,
}

func runContextRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	if err := store.RenameContext(oldName, newName); err != nil {
		if err == credentials.ErrContextNotFound {
			return fmt.Errorf("context '%s' not found", oldName)
		}
		return fmt.Errorf("failed to rename context: %w", err)
	}

	fmt.Printf("Renamed context: %s -> %s\n", oldName, newName)
	return nil
}
