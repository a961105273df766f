// Package constants provides shared constants used throughout the notekeeper codebase.
// This includes server defaults, timeouts, limits, and file permissions
// that should be consistent across the CLI and the HTTP server.
package constants

import "time"

// Server defaults
const (
	// DefaultHost is the address the HTTP server binds to
	DefaultHost = "localhost"

	// DefaultPort is the port the HTTP server listens on
	DefaultPort = 8000

	// DefaultNotesFile is the backing JSON document, relative to the working directory
	DefaultNotesFile = "notes.json"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultReadTimeout is the HTTP server read timeout
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the HTTP server write timeout
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the HTTP server keep-alive idle timeout
	DefaultIdleTimeout = 120 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the HTTP server
	ShutdownTimeout = 30 * time.Second
)

// Limit constants
const (
	// MaxUploadSize caps request bodies parsed by the upload and update endpoints (10 MiB)
	MaxUploadSize = 10 << 20

	// DefaultRateLimit is requests per minute per client IP (0 disables limiting)
	DefaultRateLimit = 0
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
