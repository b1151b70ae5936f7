package handlers

import (
	"net/http"

	"recall-notes-backend/internal/application/services"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler handles user registration and lookup
type UserHandler struct {
	base
	service *services.RecordService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *services.RecordService, errHandler *appErrors.ErrorHandler, logger *zap.Logger, maxBodyBytes int64) *UserHandler {
	return &UserHandler{
		base:    newBase(errHandler, logger, maxBodyBytes),
		service: service,
	}
}

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req.Username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}
