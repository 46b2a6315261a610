package api

import (
	"context"
	"net/http"
	"time"

	"github.com/healthmate-ai/healthmate/internal/log"
)

// Pinger reports backing-store connectivity. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler serves liveness and readiness probes.
type healthHandler struct {
	db     Pinger // optional; nil means no database dependency
	logger log.Logger
}

// live handles GET /health. Always healthy while the process runs.
func (h *healthHandler) live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// ready handles GET /ready. Verifies the database connection when one is
// configured.
func (h *healthHandler) ready(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "database unreachable",
			}, h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}
