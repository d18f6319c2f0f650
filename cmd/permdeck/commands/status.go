package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/internal/cli/output"
	"github.com/permdeck/permdeck/pkg/apiclient"
)

var (
	statusOutput string
	statusURL    string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Long: `Display the current status of a running PermDeck server.

This command calls the health and readiness endpoints and reports the
loaded domain with its principal and file counts.

Examples:
  # Check status of a local server
  permdeck status

  # Check a remote server
  permdeck status --url http://permdeck.internal:8080

  # Output as JSON
  permdeck status --output json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusURL, "url", "http://localhost:8080", "Server base URL")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// ServerStatus represents the server status information.
type ServerStatus struct {
	Running bool   `json:"running" yaml:"running"`
	Healthy bool   `json:"healthy" yaml:"healthy"`
	Message string `json:"message" yaml:"message"`
	Domain  string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Users   int    `json:"users" yaml:"users"`
	Groups  int    `json:"groups" yaml:"groups"`
	Files   int    `json:"files" yaml:"files"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(statusOutput)
	if err != nil {
		return err
	}

	status := ServerStatus{
		Message: "Server is not running",
	}

	client := apiclient.New(statusURL)
	if client.Healthy() {
		status.Running = true
		status.Message = "Server is running but no domain is loaded"

		if ready, err := client.Ready(); err == nil {
			status.Healthy = true
			status.Message = "Server is running and ready"
			status.Domain = ready.Domain
			status.Users = ready.Users
			status.Groups = ready.Groups
			status.Files = ready.Files
		}
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, status)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, status)
	default:
		printStatusTable(status)
	}

	return nil
}

func printStatusTable(status ServerStatus) {
	printer := output.DefaultPrinter()

	if !status.Running {
		printer.Error(status.Message)
		return
	}
	if !status.Healthy {
		printer.Warning(status.Message)
		return
	}

	printer.Success(status.Message)
	pairs := [][2]string{
		{"Domain", status.Domain},
		{"Users", fmt.Sprintf("%d", status.Users)},
		{"Groups", fmt.Sprintf("%d", status.Groups)},
		{"Files", fmt.Sprintf("%d", status.Files)},
	}
	_ = output.SimpleTable(os.Stdout, pairs)
}
