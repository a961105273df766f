package notes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
)

// NewUpdateCommand creates the notes update subcommand. Omitting TEXT
// clears the note, matching PUT without a note field.
func NewUpdateCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "update NAME [TEXT]",
		Short: "Replace the text of a note",
		Args:  cobra.RangeArgs(1, 2),
		Example: `  notekeeper notes update groceries "milk, eggs, bread"
  notekeeper notes update groceries        # Clear the text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, service, err := serviceContext(cmd, app, "update")
			if err != nil {
				return err
			}

			var text string
			if len(args) == 2 {
				text = args[1]
			}

			if err := service.Update(ctx, args[0], text); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Note %q updated\n", args[0])
			return err
		},
	}
}
