// Package memory provides the in-process RecordStore used by the service.
// State lives for the lifetime of the process only.
package memory

import (
	"context"
	"sync"
	"time"

	"recall-notes-backend/internal/application/ports"
	"recall-notes-backend/internal/domain"
	appErrors "recall-notes-backend/pkg/errors"
	"recall-notes-backend/pkg/utils"

	"github.com/google/uuid"
)

// Store is a mutex-guarded in-memory implementation of ports.RecordStore.
type Store struct {
	mu sync.RWMutex

	users         map[string]domain.User   // userID -> User
	usernameIndex map[string]string        // username -> userID
	notes         map[string][]domain.Note // userID -> notes in insertion order
	noteCount     int

	newID func() string
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:         make(map[string]domain.User),
		usernameIndex: make(map[string]string),
		notes:         make(map[string][]domain.Note),
		newID:         func() string { return uuid.New().String() },
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.RecordStore = (*Store)(nil)

// CreateUser registers username. Usernames are compared case-sensitively.
func (s *Store) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernameIndex[username]; taken {
		return nil, appErrors.NewConflictError("Username already exists")
	}

	user := domain.User{
		ID:        s.newID(),
		Username:  username,
		CreatedAt: utils.FormatISO8601(s.now()),
	}

	s.users[user.ID] = user
	s.usernameIndex[username] = user.ID
	s.notes[user.ID] = []domain.Note{}

	return &user, nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, userNotFound()
	}
	return &user, nil
}

// AddNote appends a plain note to the user's sequence.
func (s *Store) AddNote(ctx context.Context, userID, text string) (*domain.Note, error) {
	return s.appendNote(userID, text, nil)
}

// AddRecallNote appends a note carrying recall records. A nil data slice is
// stored as empty so the note still reads as a recall note.
func (s *Store) AddRecallNote(ctx context.Context, userID, text string, data []domain.RecallRecord) (*domain.Note, error) {
	if data == nil {
		data = []domain.RecallRecord{}
	}
	return s.appendNote(userID, text, domain.CloneRecalls(data))
}

func (s *Store) appendNote(userID, text string, data []domain.RecallRecord) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, userNotFound()
	}

	note := domain.Note{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: utils.FormatISO8601(s.now()),
		Data:      data,
	}
	s.notes[userID] = append(s.notes[userID], note)
	s.noteCount++

	out := note
	out.Data = domain.CloneRecalls(note.Data)
	return &out, nil
}

// ListNotes returns a copy of the user's notes in insertion order.
func (s *Store) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, userNotFound()
	}

	stored := s.notes[userID]
	out := make([]domain.Note, len(stored))
	for i, n := range stored {
		out[i] = n
		out[i].Data = domain.CloneRecalls(n.Data)
	}
	return out, nil
}

// Stats reports how many users and notes are stored.
func (s *Store) Stats(ctx context.Context) (ports.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ports.StoreStats{Users: len(s.users), Notes: s.noteCount}, nil
}

func userNotFound() error {
	return appErrors.NewNotFoundError("User")
}
