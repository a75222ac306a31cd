package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
)

// Readiness pings the stores so a load balancer can hold traffic while a
// database is down. /health stays a plain liveness probe.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.Ready(ctx); err != nil {
			logger.Warn("readiness check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Ready"})
}
