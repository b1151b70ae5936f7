package services

import (
	"context"
	"fmt"

	"recall-notes-backend/internal/application/ports"
	"recall-notes-backend/internal/domain"
	"recall-notes-backend/internal/infrastructure/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecallLookupResult is returned by LookupRecalls.
type RecallLookupResult struct {
	Query       string                `json:"query"`
	Results     []domain.RecallRecord `json:"results"`
	SavedNoteID string                `json:"saved_note_id"`
}

// UserNotes is the full note sequence of one user.
type UserNotes struct {
	UserID string        `json:"user_id"`
	Notes  []domain.Note `json:"notes"`
}

// RecordService composes the record store and the recall lookup into the
// operations exposed over HTTP. Every operation is a single synchronous
// transaction; any error aborts it without partial writes.
type RecordService struct {
	store   ports.RecordStore
	recalls ports.RecallLookup
	metrics *observability.Collector
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewRecordService creates a new record service
func NewRecordService(
	store ports.RecordStore,
	recalls ports.RecallLookup,
	metrics *observability.Collector,
	logger *zap.Logger,
) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{
		store:   store,
		recalls: recalls,
		metrics: metrics,
		logger:  logger,
		tracer:  otel.Tracer("recall-notes-backend/services"),
	}
}

// RegisterUser creates a new user.
func (s *RecordService) RegisterUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.store.CreateUser(ctx, username)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordUserCreated()
	s.logger.Info("User registered",
		zap.String("userID", user.ID),
		zap.String("username", user.Username),
	)
	return user, nil
}

// GetUser fetches a user by id.
func (s *RecordService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// AddNote appends a plain note to the user's notes.
func (s *RecordService) AddNote(ctx context.Context, userID, text string) (*domain.Note, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	note, err := s.store.AddNote(ctx, userID, text)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordNoteCreated("plain")
	s.logger.Debug("Note added",
		zap.String("userID", userID),
		zap.String("noteID", note.ID),
	)
	return note, nil
}

// ListNotes returns every note of the user in insertion order.
func (s *RecordService) ListNotes(ctx context.Context, userID string) (*UserNotes, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	notes, err := s.store.ListNotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserNotes{UserID: userID, Notes: notes}, nil
}

// LookupRecalls queries the recall source and saves the normalized result as
// a note. Nothing is written when the lookup fails.
func (s *RecordService) LookupRecalls(ctx context.Context, userID, foodQuery string, limit, skip int) (*RecallLookupResult, error) {
	ctx, span := s.tracer.Start(ctx, "RecordService.LookupRecalls",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.recalls.Lookup(ctx, foodQuery, limit, skip)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	note, err := s.store.AddRecallNote(ctx, userID, RecallSummary(foodQuery, len(records)), records)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.RecordNoteCreated("recall")
	s.logger.Info("Recall lookup saved",
		zap.String("userID", userID),
		zap.String("noteID", note.ID),
		zap.Int("results", len(records)),
	)

	return &RecallLookupResult{
		Query:       foodQuery,
		Results:     records,
		SavedNoteID: note.ID,
	}, nil
}

// Stats reports store counts for readiness checks.
func (s *RecordService) Stats(ctx context.Context) (ports.StoreStats, error) {
	return s.store.Stats(ctx)
}

// RecallSummary is the text stored on a recall note.
func RecallSummary(foodQuery string, count int) string {
	return fmt.Sprintf("FDA recall lookup for '%s'. Results returned: %d", foodQuery, count)
}
