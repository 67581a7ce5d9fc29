package server

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware caps each request's context at the given duration.
// Cancellation is cooperative: handlers that honor ctx.Done() stop, handlers
// that ignore it run on.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
