package context

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/credentials"
	"github.com/permdeck/permdeck/internal/cli/timeutil"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current context",
	Long: `Display information about the current active context.

Examples:
  # Show current context
  permdeckctl context current

  # Show as JSON
  permdeckctl context current -o json`,
	RunE: runContextCurrent,
}

func runContextCurrent(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	contextName := store.GetCurrentContextName()
	if contextName == "" {
		return fmt.Errorf("no current context set\n\n" +
			"Login to a server first:\n" +
			"  permdeckctl login --server http://localhost:8080")
	}

	ctx, err := store.GetContext(contextName)
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}

	info := ContextInfo{
		Name:      contextName,
		Current:   true,
		ServerURL: ctx.ServerURL,
		Username:  ctx.Username,
		LoggedIn:  ctx.AccessToken != "" && !ctx.IsExpired(),
	}

	return cmdutil.PrintResource(os.Stdout, info, singleContextTable{info: info, expires: timeutil.FormatLocal(ctx.ExpiresAt)})
}

type singleContextTable struct {
	info    ContextInfo
	expires string
}

func (s singleContextTable) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

func (s singleContextTable) Rows() [][]string {
	return [][]string{
		{"Name", s.info.Name},
		{"Server", s.info.ServerURL},
		{"User", cmdutil.EmptyOr(s.info.Username, "-")},
		{"Logged in", cmdutil.BoolToYesNo(s.info.LoggedIn)},
		{"Token expires", s.expires},
	}
}
