package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"recall-notes-backend/internal/domain"
	"recall-notes-backend/internal/infrastructure/observability"
	"recall-notes-backend/internal/repository/memory"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRecallLookup struct {
	mock.Mock
}

func (m *MockRecallLookup) Lookup(ctx context.Context, foodQuery string, limit, skip int) ([]domain.RecallRecord, error) {
	args := m.Called(ctx, foodQuery, limit, skip)
	if records := args.Get(0); records != nil {
		return records.([]domain.RecallRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (*RecordService, *MockRecallLookup, *observability.Collector) {
	t.Helper()
	lookup := new(MockRecallLookup)
	metrics := observability.NewCollector("test")
	return NewRecordService(memory.NewStore(), lookup, metrics, zap.NewNop()), lookup, metrics
}

func TestRecordService_RegisterAndFetch(t *testing.T) {
	ctx := context.Background()
	svc, _, metrics := newService(t)

	user, err := svc.RegisterUser(ctx, "alice")
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = svc.RegisterUser(ctx, "alice")
	assert.True(t, appErrors.IsConflict(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UsersCreated))
}

func TestRecordService_Notes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	user, err := svc.RegisterUser(ctx, "alice")
	require.NoError(t, err)

	listed, err := svc.ListNotes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, listed.UserID)
	assert.Empty(t, listed.Notes)

	note, err := svc.AddNote(ctx, user.ID, "hello")
	require.NoError(t, err)
	assert.Nil(t, note.Data)

	listed, err = svc.ListNotes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed.Notes, 1)
	assert.Equal(t, *note, listed.Notes[0])
}

func TestRecordService_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, lookup, _ := newService(t)

	_, err := svc.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.AddNote(ctx, "ghost", "text")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.ListNotes(ctx, "ghost")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.LookupRecalls(ctx, "ghost", "spinach", 5, 0)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
	assert.Zero(t, stats.Notes)
}

func TestRecordService_LookupRecalls(t *testing.T) {
	ctx := context.Background()
	svc, lookup, metrics := newService(t)

	user, err := svc.RegisterUser(ctx, "alice")
	require.NoError(t, err)

	records := []domain.RecallRecord{
		{ProductDescription: strPtr("Peanut butter"), Classification: strPtr("Class I")},
		{ProductDescription: strPtr("Peanut butter crackers")},
	}
	lookup.On("Lookup", mock.Anything, "peanut butter", 5, 0).Return(records, nil)

	result, err := svc.LookupRecalls(ctx, user.ID, "peanut butter", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, "peanut butter", result.Query)
	assert.Equal(t, records, result.Results)
	assert.NotEmpty(t, result.SavedNoteID)

	listed, err := svc.ListNotes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed.Notes, 1)
	saved := listed.Notes[0]
	assert.Equal(t, result.SavedNoteID, saved.ID)
	assert.Equal(t, "FDA recall lookup for 'peanut butter'. Results returned: 2", saved.Text)
	assert.Equal(t, records, saved.Data)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NotesCreated.WithLabelValues("recall")))

	lookup.AssertExpectations(t)
}

func TestRecordService_LookupRecalls_UpstreamFailureSavesNothing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"transport failure", appErrors.NewUpstreamUnavailableError("openFDA", errors.New("dial tcp: refused")), http.StatusBadGateway},
		{"upstream status", appErrors.NewUpstreamError("openFDA", http.StatusNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, lookup, _ := newService(t)
			user, err := svc.RegisterUser(ctx, "alice")
			require.NoError(t, err)

			lookup.On("Lookup", mock.Anything, "spinach", 5, 0).Return(nil, tt.err)

			_, err = svc.LookupRecalls(ctx, user.ID, "spinach", 5, 0)
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, appErrors.StatusOf(err))

			listed, err := svc.ListNotes(ctx, user.ID)
			require.NoError(t, err)
			assert.Empty(t, listed.Notes)
		})
	}
}

func TestRecallSummary(t *testing.T) {
	assert.Equal(t, "FDA recall lookup for ' spinach '. Results returned: 0", RecallSummary(" spinach ", 0))
}
