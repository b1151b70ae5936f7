package handlers

import (
	"net/http"

	"recall-notes-backend/internal/application/services"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NoteHandler handles a user's plain notes
type NoteHandler struct {
	base
	service *services.RecordService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service *services.RecordService, errHandler *appErrors.ErrorHandler, logger *zap.Logger, maxBodyBytes int64) *NoteHandler {
	return &NoteHandler{
		base:    newBase(errHandler, logger, maxBodyBytes),
		service: service,
	}
}

// CreateNoteRequest represents the request body for adding a note.
// Empty text is allowed; the field only has to be present.
type CreateNoteRequest struct {
	Text *string `json:"text" validate:"required"`
}

// CreateNote handles POST /users/{userID}/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	note, err := h.service.AddNote(r.Context(), chi.URLParam(r, "userID"), *req.Text)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, note)
}

// ListNotes handles GET /users/{userID}/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListNotes(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, notes)
}
