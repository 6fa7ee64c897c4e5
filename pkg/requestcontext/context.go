// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, and
// nothing outside transport needs to import net/http.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey    struct{}
	requestTimeKey  struct{}
	adminSubjectKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID    = requestIDKey{}
	ContextKeyRequestTime  = requestTimeKey{}
	ContextKeyAdminSubject = adminSubjectKey{}
)

// RequestID retrieves the request ID from the context, empty when unset.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// AdminSubject retrieves the authenticated admin subject from the context.
func AdminSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(ContextKeyAdminSubject).(string); ok {
		return sub
	}
	return ""
}

// WithAdminSubject injects an authenticated admin subject into the context.
func WithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeyAdminSubject, subject)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for tests that
// don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
