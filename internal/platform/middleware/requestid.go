package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"switchyard/pkg/requestcontext"
)

// RequestID assigns a request ID (honoring an incoming X-Request-ID header)
// and captures a request-scoped timestamp so all work within one request
// observes the same "now".
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
