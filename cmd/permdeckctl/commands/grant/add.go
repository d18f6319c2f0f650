package grant

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
)

var addDeny bool

var addCmd = &cobra.Command{
	Use:   "add <permission>",
	Short: "Add a direct permission grant",
	Long: `Add a direct permission grant for a user on a file.

By default the grant is an allow. Use --deny to add a deny entry, which
overrides any allow for the same permission during evaluation. Adding an
allow removes a matching direct deny first, and vice versa.

Examples:
  # Allow alice to read /docs
  permdeckctl grant add read-data --path /docs --user alice

  # Deny bob delete on /docs/report.txt
  permdeckctl grant add delete --path /docs/report.txt --user bob --deny`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addDeny, "deny", false, "Add a deny entry instead of an allow")
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	effect := "allow"
	if addDeny {
		effect = "deny"
	}

	grant, err := client.SetGrant(grantPath, grantUser, args[0], effect, true)
	if err != nil {
		return fmt.Errorf("failed to add grant: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, grant,
		fmt.Sprintf("Granted %s %s on %s to %s", effect, grant.Permission, grant.Path, grant.User))
}
