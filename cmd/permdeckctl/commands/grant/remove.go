package grant

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/prompt"
	"github.com/permdeck/permdeck/pkg/apiclient"
)

var (
	removeDeny  bool
	removeForce bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <permission>",
	Short: "Retract a direct permission grant",
	Long: `Retract a direct permission grant for a user on a file.

The server refuses to retract a grant the user holds only through group
membership; remove the group's entry or the user's membership instead.

Examples:
  # Retract alice's read-data allow on /docs
  permdeckctl grant remove read-data --path /docs --user alice

  # Retract a deny entry
  permdeckctl grant remove delete --path /docs --user bob --deny

  # Skip the confirmation prompt
  permdeckctl grant remove read-data --path /docs --user alice --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeDeny, "deny", false, "Retract a deny entry instead of an allow")
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	permission := args[0]
	effect := "allow"
	if removeDeny {
		effect = "deny"
	}

	label := fmt.Sprintf("Retract %s %s on %s from %s?", effect, permission, grantPath, grantUser)
	confirmed, err := prompt.ConfirmWithForce(label, removeForce)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	grant, err := client.SetGrant(grantPath, grantUser, permission, effect, false)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.IsConflict() {
			return fmt.Errorf("cannot retract: %s", apiErr.Message)
		}
		return fmt.Errorf("failed to retract grant: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, grant,
		fmt.Sprintf("Retracted %s %s on %s from %s", effect, permission, grantPath, grantUser))
}
