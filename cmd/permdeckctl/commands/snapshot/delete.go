package snapshot

import (
	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a persisted snapshot",
	Long: `Delete a persisted snapshot from the server.

The live domain is not affected.

Examples:
  # Delete the snapshot named "corp"
  permdeckctl snapshot delete corp

  # Delete without confirmation
  permdeckctl snapshot delete corp --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("snapshot", args[0], deleteForce, func() error {
		return client.DeleteSnapshot(args[0])
	})
}
