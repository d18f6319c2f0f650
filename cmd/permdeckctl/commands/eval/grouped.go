package eval

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/apiclient"
)

var groupedCmd = &cobra.Command{
	Use:   "grouped",
	Short: "Show permissions folded onto the group catalog",
	Long: `Show the effective permission set folded onto the permission groups
(full control, modify, read & execute, read, write, special).

Each group resolves to granted, partial, or absent on both the allow and
deny sides. A partial group means some but not all of its member
permissions are present.

Examples:
  # Show alice's grouped permissions on /docs
  permdeckctl eval grouped --path /docs --user alice

  # Output as YAML
  permdeckctl eval grouped --path /docs --user alice -o yaml`,
	RunE: runGrouped,
}

// groupedTable renders per-group states for both effects.
type groupedTable struct {
	result *apiclient.GroupedPermissions
}

func (t groupedTable) Headers() []string {
	return []string{"GROUP", "ALLOW", "DENY"}
}

func (t groupedTable) Rows() [][]string {
	rows := make([][]string, 0, len(acl.AllGroups()))
	for _, group := range acl.AllGroups() {
		rows = append(rows, []string{
			group.String(),
			string(t.result.Allow[group].State),
			string(t.result.Deny[group].State),
		})
	}
	return rows
}

func runGrouped(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	result, err := client.GroupedPermissions(evalPath, evalUser)
	if err != nil {
		return fmt.Errorf("failed to evaluate grouped permissions: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, result, groupedTable{result: result})
}
