// Package serve provides the HTTP server command for the notekeeper CLI.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/notekeeper/cmd/application"
	"github.com/agentstation/notekeeper/internal/server"
	"github.com/agentstation/notekeeper/pkg/constants"
	"github.com/agentstation/notekeeper/pkg/errors"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the notes HTTP server",
		Long: `Start the HTTP server for the notes file.

Endpoints:
  GET    /                    HTML upload form
  GET    /notes               all notes as a JSON array
  POST   /upload              create a note (note_name, note)
  GET    /notes/{note_name}   note text
  PUT    /notes/{note_name}   replace note text (note)
  DELETE /notes/{note_name}   delete a note
  GET    /health, /ready      liveness and readiness probes

Request bodies may be multipart/form-data, application/x-www-form-urlencoded
or JSON. The server shuts down gracefully on SIGINT or SIGTERM.

Environment Variables:
  HTTP_HOST    - Override bind address
  HTTP_PORT    - Override port`,
		Example: `  # Start on default port 8000
  notekeeper serve

  # Serve a specific notes file on a custom port
  notekeeper serve --notes-file /var/lib/notes.json --port 3000

  # Enable CORS for specific origins
  notekeeper serve --cors-origins "https://example.com,https://app.example.com"

  # Enable rate limiting
  notekeeper serve --rate-limit 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, app)
		},
	}

	// Server configuration flags
	cmd.Flags().IntP("port", "p", constants.DefaultPort, "Server port")
	cmd.Flags().String("host", constants.DefaultHost, "Bind address")

	// CORS flags
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	// Performance flags
	cmd.Flags().Int("rate-limit", constants.DefaultRateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Int64("max-upload-size", constants.MaxUploadSize, "Maximum request body size in bytes")

	// Timeout flags
	cmd.Flags().Duration("read-timeout", constants.DefaultReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", constants.DefaultWriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", constants.DefaultIdleTimeout, "HTTP idle timeout")

	return cmd
}

// runServer starts the notes server.
func runServer(cmd *cobra.Command, _ []string, app application.Application) error {
	cfg, err := parseConfig(cmd, app.ServerConfig())
	if err != nil {
		return err
	}
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("notes_file", app.NotesFile()).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Msg("Starting notes server")

	service, err := app.Notes()
	if err != nil {
		return fmt.Errorf("opening notes: %w", err)
	}

	srv := server.New(service, logger, cfg, app.Version())
	httpServer := srv.HTTPServer()

	logger.Debug().
		Str("addr", httpServer.Addr).
		Dur("read_timeout", cfg.ReadTimeout).
		Dur("write_timeout", cfg.WriteTimeout).
		Dur("idle_timeout", cfg.IdleTimeout).
		Msg("Creating HTTP server")

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", httpServer.Addr, err)
	}

	// cmd.Context() carries signal handling from main.go
	return startWithGracefulShutdown(cmd.Context(), ln, httpServer, srv, logger, cmd.OutOrStdout())
}

// parseConfig layers the command flags and HTTP_HOST/HTTP_PORT over base.
// Host and port keep the configured values unless the flag is given.
func parseConfig(cmd *cobra.Command, base server.Config) (server.Config, error) {
	cfg := base
	flags := cmd.Flags()

	if flags.Changed("port") {
		cfg.Port = flagValue(cmd, "port", flags.GetInt)
	}
	if flags.Changed("host") {
		cfg.Host = flagValue(cmd, "host", flags.GetString)
	}
	cfg.CORSOrigins = flagValue(cmd, "cors-origins", flags.GetStringSlice)
	cfg.CORSEnabled = flagValue(cmd, "cors", flags.GetBool) || len(cfg.CORSOrigins) > 0
	cfg.RateLimit = flagValue(cmd, "rate-limit", flags.GetInt)
	cfg.MaxUploadSize = flagValue(cmd, "max-upload-size", flags.GetInt64)
	cfg.ReadTimeout = flagValue(cmd, "read-timeout", flags.GetDuration)
	cfg.WriteTimeout = flagValue(cmd, "write-timeout", flags.GetDuration)
	cfg.IdleTimeout = flagValue(cmd, "idle-timeout", flags.GetDuration)

	if env := os.Getenv("HTTP_PORT"); env != "" {
		p, err := parsePort(env)
		if err != nil {
			return cfg, fmt.Errorf("HTTP_PORT: %w", err)
		}
		cfg.Port = p
	}
	if env := os.Getenv("HTTP_HOST"); env != "" {
		cfg.Host = env
	}

	switch {
	case cfg.Port < 0 || cfg.Port > 65535:
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 0 and 65535")
	case cfg.RateLimit < 0:
		return cfg, errors.NewValidationError("rate-limit", cfg.RateLimit, "must not be negative")
	case cfg.MaxUploadSize <= 0:
		return cfg, errors.NewValidationError("max-upload-size", cfg.MaxUploadSize, "must be positive")
	}
	return cfg, nil
}

// parsePort parses a listen port from the environment. Zero is rejected
// here since an ephemeral port is only useful from the flag.
func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError("port", s, "is not a number")
	}
	if port < 1 || port > 65535 {
		return 0, errors.NewValidationError("port", port, "must be between 1 and 65535")
	}
	return port, nil
}

// startWithGracefulShutdown serves on ln until ctx is cancelled, then drains
// open connections within constants.ShutdownTimeout.
func startWithGracefulShutdown(ctx context.Context, ln net.Listener, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger, out io.Writer) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().
			Str("addr", ln.Addr().String()).
			Msg("HTTP server listening")

		_, _ = fmt.Fprintf(out, "Notes server listening on http://%s\n", ln.Addr())
		_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		_, _ = fmt.Fprintln(out, "\nShutting down notes server...")

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		_, _ = fmt.Fprintln(out, "Notes server stopped gracefully")
		return nil
	}
}

// flagValue reads a flag registered by NewCommand. A lookup failure means
// the flag name or type is wrong, so it panics.
func flagValue[T any](cmd *cobra.Command, name string, get func(string) (T, error)) T {
	v, err := get(name)
	if err != nil {
		panic(fmt.Sprintf("serve: flag %q: %v", name, err))
	}
	return v
}
