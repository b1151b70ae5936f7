package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := NewCollector("test")

	c.RecordUserCreated()
	c.RecordNoteCreated("plain")
	c.RecordNoteCreated("recall")
	c.RecordNoteCreated("recall")
	c.RecordUpstreamCall("success", 20*time.Millisecond)
	c.RecordHTTPRequest(http.MethodPost, "/users", http.StatusCreated, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.UsersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.NotesCreated.WithLabelValues("recall")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamRequests.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST", "/users", "201")))

	// Independent collectors must not collide on registration.
	assert.NotPanics(t, func() { NewCollector("test") })
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("recall_notes")
	c.RecordUserCreated()

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recall_notes_users_created_total 1")
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordUserCreated()
		c.RecordNoteCreated("plain")
		c.RecordUpstreamCall("error", time.Second)
		c.RecordHTTPRequest("GET", "/", 200, time.Second)
	})
}
