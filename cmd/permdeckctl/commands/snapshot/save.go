package snapshot

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the active domain",
	Long: `Persist the active domain's complete state as a snapshot.

The snapshot is stored under the domain's name, replacing any previous
snapshot of the same domain.

Examples:
  # Save the active domain
  permdeckctl snapshot save`,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	name, err := client.SaveSnapshot()
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, map[string]string{"name": name},
		fmt.Sprintf("Snapshot '%s' saved", name))
}
