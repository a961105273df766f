// Package notes provides commands that work on the notes file directly,
// without a running server.
package notes

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
	"github.com/agentstation/notekeeper/pkg/logging"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// NewCommand creates the notes command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes [command]",
		Aliases: []string{"note"},
		Short:   "Manage notes in the notes file",
		Long: `Notes reads and writes the notes file directly, applying the same
rules as the HTTP server: names are unique, creating a note needs both a
name and text, and every change rewrites the whole file.

Available subcommands:
  list     - all notes in insertion order
  get      - the text of one note
  add      - create a note
  update   - replace the text of a note
  delete   - remove a note`,
		Example: `  notekeeper notes list                    # List all notes
  notekeeper notes list -o json            # List as JSON
  notekeeper notes add groceries "milk"    # Create a note
  notekeeper notes get groceries           # Print its text
  notekeeper notes delete groceries        # Remove it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown command: %s", args[0])
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewGetCommand(app))
	cmd.AddCommand(NewAddCommand(app))
	cmd.AddCommand(NewUpdateCommand(app))
	cmd.AddCommand(NewDeleteCommand(app))

	return cmd
}

// serviceContext opens the note service and returns a context carrying the
// app logger.
func serviceContext(cmd *cobra.Command, app application.Application, operation string) (context.Context, *notes.Service, error) {
	service, err := app.Notes()
	if err != nil {
		return nil, nil, err
	}
	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	ctx = logging.WithOperation(ctx, operation)
	return ctx, service, nil
}
