package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/notekeeper/cmd/notes"
	"github.com/agentstation/notekeeper/cmd/notekeeper/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewServeCommand())
	rootCmd.AddCommand(a.NewNotesCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	cmd := serve.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// NewNotesCommand creates the notes command with app dependencies.
func (a *App) NewNotesCommand() *cobra.Command {
	cmd := notes.NewCommand(a)
	cmd.GroupID = "core"
	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("notekeeper %s\n", a.Version())
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.Commit())
				cmd.Printf("  built:    %s\n", a.Date())
				cmd.Printf("  built by: %s\n", a.BuiltBy())
			}
		},
	}
}
