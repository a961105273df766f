// Package server provides the HTTP server for notekeeper.
package server

import (
	"context"
	"net/http"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/internal/server/middleware"
	"github.com/agentstation/notekeeper/pkg/logging"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	service     *notes.Service
	logger      *zerolog.Logger
	config      Config
	version     string
	startTime   utc.Time
	rateLimiter *middleware.RateLimiter
}

// New creates a new server instance with the given configuration.
func New(service *notes.Service, logger *zerolog.Logger, cfg Config, version string) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	defaults := DefaultConfig()
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaults.MaxUploadSize
	}

	logger.Debug().
		Str("addr", cfg.Addr()).
		Int("rate_limit", cfg.RateLimit).
		Msg("Creating new server instance")

	s := &Server{
		service:   service,
		logger:    logger,
		config:    cfg,
		version:   version,
		startTime: utc.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}
	return s
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server bound to the configured address and
// timeouts, serving Handler.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown records the end of the server's lifetime. The HTTP listener is
// closed by the caller through http.Server.Shutdown.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().
		Dur("uptime", utc.Now().Sub(s.startTime)).
		Msg("Notes server shutting down")
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() utc.Time {
	return s.startTime
}
