package server

import (
	"net"
	"strconv"
	"time"

	"github.com/agentstation/notekeeper/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Performance settings
	RateLimit     int // Requests per minute per IP (0 to disable)
	MaxUploadSize int64

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:          constants.DefaultHost,
		Port:          constants.DefaultPort,
		CORSEnabled:   false,
		CORSOrigins:   []string{},
		RateLimit:     constants.DefaultRateLimit,
		MaxUploadSize: constants.MaxUploadSize,
		ReadTimeout:   constants.DefaultReadTimeout,
		WriteTimeout:  constants.DefaultWriteTimeout,
		IdleTimeout:   constants.DefaultIdleTimeout,
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
