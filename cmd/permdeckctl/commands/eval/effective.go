package eval

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/pkg/acl"
	"github.com/permdeck/permdeck/pkg/apiclient"
	"github.com/permdeck/permdeck/pkg/engine"
)

var effectiveVerbose bool

var effectiveCmd = &cobra.Command{
	Use:   "effective",
	Short: "Show the effective permission set",
	Long: `Show the effective state of every catalog permission for a user on a file.

Each permission resolves to allowed, denied, or unset. Use --explain to
include the access control entries responsible for each decision.

Examples:
  # Evaluate alice's permissions on /docs
  permdeckctl eval effective --path /docs --user alice

  # Include provenance for each decision
  permdeckctl eval effective --path /docs --user alice --explain

  # Output as JSON
  permdeckctl eval effective --path /docs --user alice -o json`,
	RunE: runEffective,
}

func init() {
	effectiveCmd.Flags().BoolVar(&effectiveVerbose, "explain", false, "Show the entries responsible for each decision")
}

// effectiveTable renders the per-permission states.
type effectiveTable struct {
	result  *apiclient.EffectivePermissions
	explain bool
}

func (t effectiveTable) Headers() []string {
	if t.explain {
		return []string{"PERMISSION", "STATE", "SOURCE"}
	}
	return []string{"PERMISSION", "STATE"}
}

func (t effectiveTable) Rows() [][]string {
	rows := make([][]string, 0, len(acl.AllPermissions()))
	for _, perm := range acl.AllPermissions() {
		state := string(t.result.States[perm.String()])
		if !t.explain {
			rows = append(rows, []string{perm.String(), state})
			continue
		}
		rows = append(rows, []string{perm.String(), state, t.source(perm)})
	}
	return rows
}

// source summarizes the winning provenance for one permission.
func (t effectiveTable) source(perm acl.Permission) string {
	// Denies win, so report them first
	if provs := t.result.Deny[perm]; len(provs) > 0 {
		return formatProvenance(provs[0])
	}
	if provs := t.result.Allow[perm]; len(provs) > 0 {
		return formatProvenance(provs[0])
	}
	return "-"
}

func formatProvenance(p engine.Provenance) string {
	if p.ACE.Inherited {
		return fmt.Sprintf("%s (inherited from %s)", p.ACE.String(), p.Path)
	}
	return fmt.Sprintf("%s on %s", p.ACE.String(), p.Path)
}

func runEffective(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	result, err := client.EffectivePermissions(evalPath, evalUser)
	if err != nil {
		return fmt.Errorf("failed to evaluate permissions: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, result, effectiveTable{result: result, explain: effectiveVerbose})
}
