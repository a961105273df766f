package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/internal/server/response"
)

// RateLimiter admits at most limit requests per client IP in each
// fixed one-minute window. Expired windows are swept on use, so there is
// no background goroutine to stop.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time
	logger *zerolog.Logger

	mu        sync.Mutex
	clients   map[string]*clientWindow
	lastSweep time.Time
}

type clientWindow struct {
	start time.Time
	used  int
}

// NewRateLimiter returns a limiter admitting limit requests per minute
// per IP.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  time.Minute,
		now:     time.Now,
		logger:  logger,
		clients: make(map[string]*clientWindow),
	}
}

// allow counts a request from ip. When the window is used up it returns
// false and the time left until the window ends.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	cw, ok := rl.clients[ip]
	if !ok || now.Sub(cw.start) >= rl.window {
		cw = &clientWindow{start: now}
		rl.clients[ip] = cw
	}
	if cw.used >= rl.limit {
		return false, cw.start.Add(rl.window).Sub(now)
	}
	cw.used++
	return true, 0
}

// sweep drops ended windows, at most once per window length.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for ip, cw := range rl.clients {
		if now.Sub(cw.start) >= rl.window {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

// RateLimit rejects requests over the limiter's budget with 429 and a
// Retry-After header in whole seconds.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			ok, wait := rl.allow(ip)
			if !ok {
				retry := int(math.Ceil(wait.Seconds()))
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Int("retry_after", retry).
					Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(retry))
				response.Text(w, http.StatusTooManyRequests, response.MsgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then the remote host.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
