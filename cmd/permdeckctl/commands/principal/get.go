package principal

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show one principal",
	Long: `Show one user or group, including transitive group memberships.

Examples:
  # Show the user alice
  permdeckctl principal get alice

  # Show the group staff as JSON
  permdeckctl principal get staff -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	principal, err := client.GetPrincipal(args[0])
	if err != nil {
		return fmt.Errorf("failed to get principal: %w", err)
	}

	table := output.NewTableData("FIELD", "VALUE")
	table.AddRow("Name", principal.Name)
	table.AddRow("Kind", principal.Kind)
	table.AddRow("Display name", cmdutil.EmptyOr(principal.DisplayName, "-"))
	if principal.Kind == "group" {
		table.AddRow("Members", cmdutil.EmptyOr(strings.Join(principal.Members, ", "), "-"))
	} else {
		table.AddRow("Groups", cmdutil.EmptyOr(strings.Join(principal.Groups, ", "), "-"))
	}

	return cmdutil.PrintResource(os.Stdout, principal, table)
}
