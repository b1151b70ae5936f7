package handlers

import (
	"net/http"

	"recall-notes-backend/internal/application/services"
	appErrors "recall-notes-backend/pkg/errors"

	"go.uber.org/zap"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	base
	service *services.RecordService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.RecordService, errHandler *appErrors.ErrorHandler, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		base:    newBase(errHandler, logger, 0),
		service: service,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready handles GET /ready and reports store counts
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"store":  stats,
	})
}
