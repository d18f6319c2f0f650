package grant

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
)

var (
	groupDeny   bool
	groupRemove bool
)

var groupCmd = &cobra.Command{
	Use:   "group <permission-group>",
	Short: "Add or retract a whole permission group",
	Long: `Add or retract every permission in a permission group at once.

Valid groups: full-control, modify, read-execute, read, write, special.
Adding a group adds each member permission; retracting removes each. The
mutation is atomic on the server: group-attribution conflicts on any
member permission reject the whole request.

Examples:
  # Grant the read group to alice on /docs
  permdeckctl grant group read --path /docs --user alice

  # Retract the write group
  permdeckctl grant group write --path /docs --user alice --remove

  # Deny the modify group
  permdeckctl grant group modify --path /docs --user bob --deny`,
	Args: cobra.ExactArgs(1),
	RunE: runGroup,
}

func init() {
	groupCmd.Flags().BoolVar(&groupDeny, "deny", false, "Operate on deny entries instead of allows")
	groupCmd.Flags().BoolVar(&groupRemove, "remove", false, "Retract the group instead of adding it")
}

func runGroup(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	effect := "allow"
	if groupDeny {
		effect = "deny"
	}

	grant, err := client.SetGroupGrant(grantPath, grantUser, args[0], effect, !groupRemove)
	if err != nil {
		return fmt.Errorf("failed to apply group grant: %w", err)
	}

	verb := "Granted"
	if groupRemove {
		verb = "Retracted"
	}
	return cmdutil.PrintResourceWithSuccess(os.Stdout, grant,
		fmt.Sprintf("%s %s group %s on %s for %s", verb, effect, grant.Group, grant.Path, grant.User))
}
