package snapshot

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/prompt"
)

var restoreForce bool

var restoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore a snapshot",
	Long: `Restore a persisted snapshot and make it the active domain.

The live domain is replaced immediately. A later seed file reload will
replace the restored domain again.

Examples:
  # Restore the snapshot named "corp"
  permdeckctl snapshot restore corp

  # Restore without confirmation
  permdeckctl snapshot restore corp --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "Skip confirmation prompt")
}

func runRestore(cmd *cobra.Command, args []string) error {
	name := args[0]

	confirmed, err := prompt.ConfirmWithForce(
		fmt.Sprintf("Replace the live domain with snapshot '%s'?", name), restoreForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if err := client.RestoreSnapshot(name); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Snapshot '%s' restored", name))
	return nil
}
