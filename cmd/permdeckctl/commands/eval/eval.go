// Package eval implements permission evaluation commands for permdeckctl.
package eval

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for permission evaluation.
var Cmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate effective permissions",
	Long: `Evaluate effective permissions for a user on a file.

Evaluation walks the file's inheritance chain, collects every applicable
access control entry for the user and the groups they belong to, and
applies deny-overrides-allow semantics.`,
}

var (
	evalPath string
	evalUser string
)

func init() {
	Cmd.PersistentFlags().StringVar(&evalPath, "path", "", "File path (required)")
	Cmd.PersistentFlags().StringVar(&evalUser, "user", "", "Username (required)")
	_ = Cmd.MarkPersistentFlagRequired("path")
	_ = Cmd.MarkPersistentFlagRequired("user")

	Cmd.AddCommand(effectiveCmd)
	Cmd.AddCommand(groupedCmd)
	Cmd.AddCommand(attributionCmd)
}
