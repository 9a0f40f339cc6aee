package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is implemented by the store clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the backing stores answer.
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler checking each named store.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failures := make(map[string]string)
	for name, check := range h.checks {
		if check == nil {
			failures[name] = "not configured"
			continue
		}
		if err := check.Ping(ctx); err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
			"errors": failures,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
