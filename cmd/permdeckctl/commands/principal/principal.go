// Package principal implements directory inspection commands for permdeckctl.
package principal

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for principal inspection.
var Cmd = &cobra.Command{
	Use:   "principal",
	Short: "Inspect users and groups",
	Long: `Inspect the users and groups of the active domain.

The directory is seeded from the domain seed file; memberships shown here
include transitive group membership.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
}
