// Package application declares what notekeeper commands need from the
// running program. Commands take an Application instead of the concrete
// app so tests can hand them a Mock pointed at a temp notes file:
//
//	mock := &application.Mock{
//	    NotesFileFunc: func() string { return filepath.Join(t.TempDir(), "notes.json") },
//	}
//	cmd := notes.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/internal/server"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// Application is implemented by cmd/notekeeper/app.App and by Mock.
// Implementations must be safe for concurrent use.
type Application interface {
	// Notes returns the note service for NotesFile. Every call returns the
	// same service, so one lock guards the file for the whole process.
	Notes() (*notes.Service, error)

	// NotesFile is the path of the JSON notes file.
	NotesFile() string

	// ServerConfig is the HTTP server configuration from the config file
	// and environment, before serve flags are applied.
	ServerConfig() server.Config

	Logger() *zerolog.Logger

	// OutputFormat is the -o value: table, wide, json, yaml or "".
	OutputFormat() string

	Version() string
}
