package file

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all files",
	Long: `List every file in the active domain with its direct ACL size.

Examples:
  # List files as table
  permdeckctl file list

  # List as JSON (includes the full ACLs)
  permdeckctl file list -o json`,
	RunE: runList,
}

// FileList is a list of files for table rendering.
type FileList []apiclient.File

// Headers implements TableRenderer.
func (fl FileList) Headers() []string {
	return []string{"PATH", "PARENT", "INHERITS", "DIRECT ACES"}
}

// Rows implements TableRenderer.
func (fl FileList) Rows() [][]string {
	rows := make([][]string, 0, len(fl))
	for _, f := range fl {
		rows = append(rows, []string{
			f.Path,
			cmdutil.EmptyOr(f.Parent, "-"),
			cmdutil.BoolToYesNo(f.Inheritance),
			fmt.Sprintf("%d", len(f.ACL)),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	files, err := client.ListFiles()
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, files, len(files) == 0, "No files found.", FileList(files))
}
