package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permdeck/permdeck/cmd/permdeckctl/cmdutil"
	"github.com/permdeck/permdeck/internal/cli/credentials"
	"github.com/permdeck/permdeck/internal/cli/prompt"
)

var useCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Switch to a different context",
	Long: `Switch to a different server context.

This changes the active context used for subsequent commands.
When no name is given, pick one interactively.

Examples:
  # Switch to context named "production"
  permdeckctl context use production

  # Pick a context from a list
  permdeckctl context use`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContextUse,
}

// contextOptions builds the selection list, marking the active context.
func contextOptions(store *credentials.Store) []prompt.SelectOption {
	names := store.ListContexts()
	current := store.GetCurrentContextName()

	options := make([]prompt.SelectOption, 0, len(names))
	for _, name := range names {
		label := name
		if name == current {
			label = name + " (current)"
		}
		option := prompt.SelectOption{Label: label, Value: name}
		if ctx, err := store.GetContext(name); err == nil {
			option.Description = ctx.ServerURL
		}
		options = append(options, option)
	}
	return options
}

func runContextUse(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	var contextName string
	if len(args) == 1 {
		contextName = args[0]
	} else {
		options := contextOptions(store)
		if len(options) == 0 {
			return fmt.Errorf("no contexts configured\n\n" +
				"Log in to create one:\n" +
				"  permdeckctl login <server-url>")
		}
		contextName, err = prompt.Select("Select context", options)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	if err := store.UseContext(contextName); err != nil {
		if err == credentials.ErrContextNotFound {
			return fmt.Errorf("context '%s' not found\n\n"+
				"List available contexts:\n"+
				"  permdeckctl context list", contextName)
		}
		return fmt.Errorf("failed to switch context: %w", err)
	}

	fmt.Printf("Switched to context: %s\n", contextName)
	return nil
}
