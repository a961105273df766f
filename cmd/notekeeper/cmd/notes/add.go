package notes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
)

// NewAddCommand creates the notes add subcommand.
func NewAddCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "add NAME TEXT",
		Aliases: []string{"create"},
		Short:   "Create a note",
		Args:    cobra.ExactArgs(2),
		Example: `  notekeeper notes add groceries "milk, eggs"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, service, err := serviceContext(cmd, app, "create")
			if err != nil {
				return err
			}

			if err := service.Create(ctx, args[0], args[1]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Note %q created\n", args[0])
			return err
		},
	}
}
