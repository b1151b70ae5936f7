package middleware

import (
	"net/http"
	"time"

	"recall-notes-backend/internal/infrastructure/observability"

	"github.com/go-chi/chi/v5/middleware"
)

// Metrics records request counts and latencies per chi route pattern, so
// /users/{userID} is one series regardless of the id.
func Metrics(collector *observability.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			collector.RecordHTTPRequest(r.Method, routePattern(r), status, time.Since(start))
		})
	}
}
