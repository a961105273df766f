// Package handlers provides HTTP request handlers for the notekeeper server.
package handlers

import (
	"context"
	"net/http"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/internal/server/response"
	"github.com/agentstation/notekeeper/pkg/constants"
	"github.com/agentstation/notekeeper/pkg/errors"
	"github.com/agentstation/notekeeper/pkg/logging"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	service       *notes.Service
	logger        *zerolog.Logger
	version       string
	startTime     utc.Time
	maxUploadSize int64
}

// Option configures a Handlers instance.
type Option func(*Handlers)

// WithVersion sets the version reported by the health endpoint.
func WithVersion(version string) Option {
	return func(h *Handlers) {
		h.version = version
	}
}

// WithStartTime sets the time uptime is measured from.
func WithStartTime(t utc.Time) Option {
	return func(h *Handlers) {
		h.startTime = t
	}
}

// WithMaxUploadSize limits request bodies to n bytes.
func WithMaxUploadSize(n int64) Option {
	return func(h *Handlers) {
		if n > 0 {
			h.maxUploadSize = n
		}
	}
}

// New creates a new Handlers instance.
func New(service *notes.Service, logger *zerolog.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	h := &Handlers{
		service:       service,
		logger:        logger,
		version:       "dev",
		startTime:     utc.Now(),
		maxUploadSize: constants.MaxUploadSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// requestContext returns the request context carrying a logger. Requests
// that did not pass through the logging middleware get the handler logger.
func (h *Handlers) requestContext(r *http.Request) context.Context {
	ctx := r.Context()
	if logging.RequestID(ctx) == "" {
		ctx = logging.WithLogger(ctx, h.logger)
	}
	return ctx
}

// fail logs err against the request and writes the matching error response.
// Store failures log at error level, client mistakes at debug.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, operation, name string, err error) {
	ctx := logging.WithOperation(h.requestContext(r), operation)
	if name != "" {
		ctx = logging.WithNote(ctx, name)
	}

	logger := logging.FromContext(ctx)
	switch {
	case errors.IsValidationError(err), errors.IsNotFound(err):
		logger.Debug().Err(err).Msg("Note request rejected")
	case errors.IsCanceled(err):
		logger.Warn().Err(err).Msg("Note request canceled")
	case errors.IsStoreError(err):
		logger.Error().Err(err).Msg("Notes file unavailable")
	default:
		logger.Error().Err(err).Msg("Note request failed")
	}
	response.ErrorFromType(w, err)
}
