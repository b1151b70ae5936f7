package ports

import (
	"context"

	"recall-notes-backend/internal/domain"
)

// RecordStore owns users and their notes.
//
// Implementations return copies; callers never share state with the store.
// Every note operation fails with a NOT_FOUND AppError when the user is unknown.
type RecordStore interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	AddNote(ctx context.Context, userID, text string) (*domain.Note, error)
	AddRecallNote(ctx context.Context, userID, text string, data []domain.RecallRecord) (*domain.Note, error)
	ListNotes(ctx context.Context, userID string) ([]domain.Note, error)
	Stats(ctx context.Context) (StoreStats, error)
}

// StoreStats is a point-in-time count of stored entities.
type StoreStats struct {
	Users int `json:"users"`
	Notes int `json:"notes"`
}
