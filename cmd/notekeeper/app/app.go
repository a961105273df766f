// Package app provides the application context and dependency management
// for the notekeeper CLI. It centralizes configuration, logging, and the
// note service shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/cmd/application"
	"github.com/agentstation/notekeeper/internal/server"
	"github.com/agentstation/notekeeper/internal/store"
	"github.com/agentstation/notekeeper/pkg/errors"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// App represents the notekeeper application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Note service (lazy-initialized, one per notes file)
	mu          sync.Mutex
	service     *notes.Service
	servicePath string
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment, .env files and the config
// file, then customized by opts.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NotesFile returns the configured notes file path.
func (a *App) NotesFile() string {
	return a.config.NotesFile
}

// ServerConfig returns the HTTP server configuration from the loaded config.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if a.config.Host != "" {
		cfg.Host = a.config.Host
	}
	if a.config.Port > 0 {
		cfg.Port = a.config.Port
	}
	return cfg
}

// Notes returns the note service for the configured notes file, creating it
// lazily. Repeated calls share one service, and so one lock.
func (a *App) Notes() (*notes.Service, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := a.config.NotesFile
	if path == "" {
		return nil, errors.NewValidationError("notes_file", path, "is required")
	}

	if a.service == nil || a.servicePath != path {
		a.logger.Debug().Str("notes_file", path).Msg("Opening notes file")
		a.service = notes.NewService(store.NewFile(path))
		a.servicePath = path
	}
	return a.service, nil
}

// Shutdown performs graceful shutdown of the application. Every write is
// flushed before its operation returns, so there is nothing left to drain.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Application shutdown")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithNotesFile overrides the notes file path.
func WithNotesFile(path string) Option {
	return func(a *App) error {
		a.config.NotesFile = path
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
