package handlers

import (
	"net/http"

	"recall-notes-backend/internal/application/services"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultRecallLimit = 5
	defaultRecallSkip  = 0
)

// RecallHandler handles recall lookups that are saved as notes
type RecallHandler struct {
	base
	service *services.RecordService
}

// NewRecallHandler creates a new recall handler
func NewRecallHandler(service *services.RecordService, errHandler *appErrors.ErrorHandler, logger *zap.Logger, maxBodyBytes int64) *RecallHandler {
	return &RecallHandler{
		base:    newBase(errHandler, logger, maxBodyBytes),
		service: service,
	}
}

// RecallLookupRequest represents the request body for a recall lookup.
// limit and skip are forwarded to openFDA without range checks.
type RecallLookupRequest struct {
	FoodQuery string `json:"food_query" validate:"notblank"`
	Limit     *int   `json:"limit,omitempty"`
	Skip      *int   `json:"skip,omitempty"`
}

// LookupRecalls handles POST /users/{userID}/fda-food-recalls
func (h *RecallHandler) LookupRecalls(w http.ResponseWriter, r *http.Request) {
	var req RecallLookupRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	limit, skip := defaultRecallLimit, defaultRecallSkip
	if req.Limit != nil {
		limit = *req.Limit
	}
	if req.Skip != nil {
		skip = *req.Skip
	}

	result, err := h.service.LookupRecalls(r.Context(), chi.URLParam(r, "userID"), req.FoodQuery, limit, skip)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, result)
}
