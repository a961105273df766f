package notes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
)

// NewDeleteCommand creates the notes delete subcommand.
func NewDeleteCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		Example: `  notekeeper notes delete groceries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, service, err := serviceContext(cmd, app, "delete")
			if err != nil {
				return err
			}

			if err := service.Delete(ctx, args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Note %q deleted\n", args[0])
			return err
		},
	}
}
