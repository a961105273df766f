package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/agentstation/notekeeper/internal/server/handlers"
	"github.com/agentstation/notekeeper/internal/server/middleware"
	"github.com/agentstation/notekeeper/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	// Create handlers instance
	h := handlers.New(
		s.service,
		s.logger,
		handlers.WithVersion(s.version),
		handlers.WithStartTime(s.startTime),
		handlers.WithMaxUploadSize(s.config.MaxUploadSize),
	)

	// Register routes
	s.registerRoutes(mux, h)

	// Apply middleware chain
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Operational endpoints
	mux.HandleFunc("/health", getOnly(h.HandleHealth))
	mux.HandleFunc("/ready", getOnly(h.HandleReady))

	// Upload form; "/" also catches every unmatched path.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			response.NotFound(w, "Not found.")
			return
		}
		getOnly(h.HandleIndex)(w, r)
	})

	// Notes collection
	mux.HandleFunc("/notes", getOnly(h.HandleListNotes))

	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.HandleUpload(w, r)
			return
		}
		response.MethodNotAllowed(w, http.MethodPost)
	})

	// Single note
	mux.HandleFunc("/notes/", func(w http.ResponseWriter, r *http.Request) {
		name, ok := noteName(r)
		if !ok {
			response.NotFound(w, "Not found.")
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			h.HandleGetNote(w, r, name)
		case http.MethodPut:
			h.HandleUpdateNote(w, r, name)
		case http.MethodDelete:
			h.HandleDeleteNote(w, r, name)
		default:
			response.MethodNotAllowed(w, "GET, PUT, DELETE")
		}
	})
}

// applyMiddleware wraps handler as recovery → logger → CORS → rate limit,
// outermost first. CORS and rate limiting are optional.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}
	if s.config.CORSEnabled {
		mws = append(mws, middleware.CORS(s.config.CORSOrigins))
	}
	if s.rateLimiter != nil {
		mws = append(mws, middleware.RateLimit(s.rateLimiter))
	}
	return middleware.Chain(mws...)(handler)
}

// getOnly rejects every method except GET and HEAD.
func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			response.MethodNotAllowed(w, http.MethodGet)
			return
		}
		next(w, r)
	}
}

// noteName extracts the note name from /notes/{note_name}. Names are
// unescaped from the raw path so an encoded slash stays part of the name.
func noteName(r *http.Request) (string, bool) {
	parts := splitPath(strings.TrimPrefix(r.URL.EscapedPath(), "/notes/"))
	if len(parts) != 1 {
		return "", false
	}
	name, err := url.PathUnescape(parts[0])
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
