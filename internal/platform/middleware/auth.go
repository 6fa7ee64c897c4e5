package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"switchyard/pkg/requestcontext"
)

// TokenValidator defines the interface for validating admin bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	Subject string
}

// RequireAdminToken guards configuration endpoints. Requests must carry a
// valid bearer token; the authenticated subject is placed in the context for
// audit logging.
func RequireAdminToken(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "missing bearer token",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeUnauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "token validation failed",
					"request_id", requestID,
					"path", r.URL.Path,
					"error", err,
				)
				writeUnauthorized(w)
				return
			}

			ctx = requestcontext.WithAdminSubject(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
}
