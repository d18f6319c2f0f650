// Package snapshot implements domain snapshot commands for permdeckctl.
package snapshot

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for snapshot management.
var Cmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage domain snapshots",
	Long: `Manage persisted domain snapshots on the server.

A snapshot captures the complete state of the active domain: principals,
memberships, files, and every access control entry. Restoring a snapshot
replaces the live domain until the next seed reload.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(saveCmd)
	Cmd.AddCommand(restoreCmd)
	Cmd.AddCommand(deleteCmd)
}
