package notes

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
	"github.com/agentstation/notekeeper/internal/cmd/output"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// NewGetCommand creates the notes get subcommand. Without an explicit
// --format the raw note text is printed.
func NewGetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the text of a note",
		Args:  cobra.ExactArgs(1),
		Example: `  notekeeper notes get groceries
  notekeeper notes get groceries -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			ctx, service, err := serviceContext(cmd, app, "get")
			if err != nil {
				return err
			}

			text, err := service.Get(ctx, name)
			if err != nil {
				return err
			}

			if app.OutputFormat() == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			return output.FormatNote(cmd.OutOrStdout(), notes.Note{Name: name, Text: text}, format)
		},
	}
}
