package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/store"
)

// HealthHandler reports liveness and session-backend readiness.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// RegisterRoutes mounts the health endpoints on r.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReady)
}

// HandleHealth answers liveness.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReady answers readiness, checking the session backend.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  "session backend unreachable",
		})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
