// Package file implements file tree inspection commands for permdeckctl.
package file

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for file inspection.
var Cmd = &cobra.Command{
	Use:   "file",
	Short: "Inspect the file tree",
	Long: `Inspect the files of the active domain and their access control lists.

Each file shows its parent, whether it inherits entries from above, and
the entries attached directly to it.`,
}

func init() {
	Cmd.AddCommand(listCmd)
}
