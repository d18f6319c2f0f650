package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Display the readiness of the connected PermDeck server.

Shows the loaded domain and the number of users, groups, and files it
contains.

Examples:
  # Check server status
  permdeckctl status

  # Output as JSON
  permdeckctl status -o json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	ready, err := client.Ready()
	if err != nil {
		return fmt.Errorf("server not ready: %w", err)
	}

	table := output.NewTableData("DOMAIN", "USERS", "GROUPS", "FILES")
	table.AddRow(ready.Domain,
		fmt.Sprintf("%d", ready.Users),
		fmt.Sprintf("%d", ready.Groups),
		fmt.Sprintf("%d", ready.Files))

	return cmdutil.PrintResource(os.Stdout, ready, table)
}
