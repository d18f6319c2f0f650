// Package grant implements permission mutation commands for permdeckctl.
package grant

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for grant management.
var Cmd = &cobra.Command{
	Use:   "grant",
	Short: "Add or retract permission grants",
	Long: `Add or retract permission grants for a user on a file.

Mutations are idempotent: adding a grant that already exists or retracting
one that does not is a no-op. Adding an allow removes a matching direct
deny and vice versa. Retracting a grant the user holds only through group
membership is refused; the server names the responsible group.`,
}

var (
	grantPath string
	grantUser string
)

func init() {
	Cmd.PersistentFlags().StringVar(&grantPath, "path", "", "File path (required)")
	Cmd.PersistentFlags().StringVar(&grantUser, "user", "", "Username (required)")
	_ = Cmd.MarkPersistentFlagRequired("path")
	_ = Cmd.MarkPersistentFlagRequired("user")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(groupCmd)
}
