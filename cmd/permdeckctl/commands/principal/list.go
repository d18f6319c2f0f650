package principal

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all principals",
	Long: `List all users and groups in the active domain.

Examples:
  # List principals as table
  permdeckctl principal list

  # List as JSON
  permdeckctl principal list -o json`,
	RunE: runList,
}

// PrincipalList is a list of principals for table rendering.
type PrincipalList []apiclient.Principal

// Headers implements TableRenderer.
func (pl PrincipalList) Headers() []string {
	return []string{"NAME", "KIND", "DISPLAY NAME", "MEMBERS"}
}

// Rows implements TableRenderer.
func (pl PrincipalList) Rows() [][]string {
	rows := make([][]string, 0, len(pl))
	for _, p := range pl {
		members := cmdutil.EmptyOr(strings.Join(p.Members, ", "), "-")
		rows = append(rows, []string{p.Name, p.Kind, cmdutil.EmptyOr(p.DisplayName, "-"), members})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	principals, err := client.ListPrincipals()
	if err != nil {
		return fmt.Errorf("failed to list principals: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, principals, len(principals) == 0, "No principals found.", PrincipalList(principals))
}
