package notes

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
	"github.com/agentstation/notekeeper/internal/cmd/output"
)

// NewListCommand creates the notes list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all notes",
		Args:    cobra.NoArgs,
		Example: `  notekeeper notes list
  notekeeper notes list -o yaml
  notekeeper notes list -o wide            # Do not truncate note text`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, service, err := serviceContext(cmd, app, "list")
			if err != nil {
				return err
			}

			list, err := service.List(ctx)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.FormatNotes(cmd.OutOrStdout(), list, format)
		},
	}
}
