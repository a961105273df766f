package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/notekeeper/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Produce json
// @Success 200 {object} object
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"service":    "notekeeper",
		"version":    h.version,
		"uptime":     time.Since(h.startTime.Time).Round(time.Second).String(),
		"started_at": h.startTime.Format(time.RFC3339),
	})
}

// HandleReady handles GET /ready.
// @Summary Readiness check
// @Description Readiness check that loads the notes file
// @Tags health
// @Produce json
// @Success 200 {object} object
// @Failure 503 {object} object
// @Router /ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Readiness check failed")
		response.ServiceUnavailable(w, "notes file not readable")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"notes":  len(list),
	})
}
