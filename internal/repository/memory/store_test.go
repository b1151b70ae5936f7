package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"recall-notes-backend/internal/domain"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestStore_CreateUser(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC)
	store := NewStore(WithClock(func() time.Time { return fixed }))

	user, err := store.CreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "2024-01-02T03:04:05.000006Z", user.CreatedAt)

	t.Run("duplicate username is a conflict every time", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := store.CreateUser(ctx, "alice")
			assert.True(t, appErrors.IsConflict(err))
		}
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		_, err := store.CreateUser(ctx, "Alice")
		assert.NoError(t, err)
	})
}

func TestStore_CreateUser_UniqueIdentifiers(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		user, err := store.CreateUser(ctx, fmt.Sprintf("user-%03d", i))
		require.NoError(t, err)
		assert.False(t, seen[user.ID], "identifier reused: %s", user.ID)
		seen[user.ID] = true
	}
}

func TestStore_GetUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.CreateUser(ctx, "bob")
	require.NoError(t, err)

	got, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = store.GetUser(ctx, "missing")
	assert.True(t, appErrors.IsNotFound(err))
}

func TestStore_Notes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	user, err := store.CreateUser(ctx, "carol")
	require.NoError(t, err)

	t.Run("fresh user has no notes", func(t *testing.T) {
		notes, err := store.ListNotes(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("notes are listed in insertion order", func(t *testing.T) {
		var want []string
		for i := 0; i < 5; i++ {
			text := fmt.Sprintf("note %d", i)
			note, err := store.AddNote(ctx, user.ID, text)
			require.NoError(t, err)
			assert.Nil(t, note.Data)
			want = append(want, note.ID)
		}

		notes, err := store.ListNotes(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, notes, 5)
		for i, n := range notes {
			assert.Equal(t, want[i], n.ID)
			assert.Equal(t, fmt.Sprintf("note %d", i), n.Text)
			assert.False(t, n.IsRecallNote())
		}
	})

	t.Run("recall notes carry their data", func(t *testing.T) {
		data := []domain.RecallRecord{{ProductDescription: strPtr("Peanut butter"), Classification: strPtr("Class II")}}
		note, err := store.AddRecallNote(ctx, user.ID, "lookup", data)
		require.NoError(t, err)
		require.Len(t, note.Data, 1)

		// Mutating the caller's slice must not leak into the store.
		*data[0].ProductDescription = "changed"

		notes, err := store.ListNotes(ctx, user.ID)
		require.NoError(t, err)
		last := notes[len(notes)-1]
		assert.Equal(t, note.ID, last.ID)
		assert.Equal(t, "Peanut butter", *last.Data[0].ProductDescription)
		assert.Nil(t, last.Data[0].RecallingFirm)
	})

	t.Run("empty recall result is still a recall note", func(t *testing.T) {
		note, err := store.AddRecallNote(ctx, user.ID, "nothing found", nil)
		require.NoError(t, err)
		assert.NotNil(t, note.Data)
		assert.Empty(t, note.Data)
	})
}

func TestStore_UnknownUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.AddNote(ctx, "nope", "text")
	assert.True(t, appErrors.IsNotFound(err))

	_, err = store.AddRecallNote(ctx, "nope", "text", nil)
	assert.True(t, appErrors.IsNotFound(err))

	_, err = store.ListNotes(ctx, "nope")
	assert.True(t, appErrors.IsNotFound(err))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Users)
	assert.Equal(t, 0, stats.Notes)
}

func TestStore_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.CreateUser(ctx, "same-name"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	user, err := store.CreateUser(ctx, "dave")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AddNote(ctx, user.ID, strings.Repeat("x", i+1))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	notes, err := store.ListNotes(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 50)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, 50, stats.Notes)
}
