package snapshot

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted snapshots",
	Long: `List the names of all snapshots persisted on the server.

Examples:
  # List snapshots
  permdeckctl snapshot list

  # List as JSON
  permdeckctl snapshot list -o json`,
	RunE: runList,
}

// SnapshotList is a list of snapshot names for table rendering.
type SnapshotList []string

// Headers implements TableRenderer.
func (sl SnapshotList) Headers() []string {
	return []string{"NAME"}
}

// Rows implements TableRenderer.
func (sl SnapshotList) Rows() [][]string {
	rows := make([][]string, 0, len(sl))
	for _, name := range sl {
		rows = append(rows, []string{name})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	snapshots, err := client.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, snapshots, len(snapshots) == 0, "No snapshots found.", SnapshotList(snapshots))
}
