package eval

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/output"
)

var (
	attributionPermission string
	attributionEffect     string
)

var attributionCmd = &cobra.Command{
	Use:   "attribution",
	Short: "Check whether a grant comes from group membership",
	Long: `Check whether a user's grant originates from one of their groups
rather than from a direct entry.

Group-sourced grants cannot be retracted through the user: the server
refuses the mutation and names the responsible group instead.

Examples:
  # Does alice hold read-data on /docs through a group?
  permdeckctl eval attribution --path /docs --user alice --permission read-data

  # Check the deny side
  permdeckctl eval attribution --path /docs --user alice --permission read-data --effect deny`,
	RunE: runAttribution,
}

func init() {
	attributionCmd.Flags().StringVar(&attributionPermission, "permission", "", "Catalog permission name (required)")
	attributionCmd.Flags().StringVar(&attributionEffect, "effect", "allow", "Effect side to check (allow|deny)")
	_ = attributionCmd.MarkFlagRequired("permission")
}

func runAttribution(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	result, err := client.Attribution(evalPath, evalUser, attributionPermission, attributionEffect)
	if err != nil {
		return fmt.Errorf("failed to check attribution: %w", err)
	}

	table := output.NewTableData("FIELD", "VALUE")
	table.AddRow("Path", result.Path)
	table.AddRow("User", result.User)
	table.AddRow("Permission", result.Permission)
	table.AddRow("Effect", result.Effect)
	table.AddRow("Group-sourced", cmdutil.BoolToYesNo(result.Attributed))
	table.AddRow("Group", cmdutil.EmptyOr(result.Group, "-"))

	return cmdutil.PrintResource(os.Stdout, result, table)
}
