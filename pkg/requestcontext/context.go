// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware and consumed by services. Keeping this
// package free of net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	identity, ok := requestcontext.Identity(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithIdentity(ctx, identity)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "pawboard/pkg/domain"
)

// AuthIdentity is the verified, typed identity produced exclusively by the
// auth middleware after token validation. Handlers and services receive
// this value, never the raw token, so skipping verification is impossible
// by construction.
type AuthIdentity struct {
	UserID id.UserID
	Email  string
	Role   string
}

type (
	identityKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeyIdentity    = identityKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Identity retrieves the verified identity from the context. The second
// return is false when the request never passed the auth middleware.
func Identity(ctx context.Context) (AuthIdentity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(AuthIdentity)
	return identity, ok
}

// WithIdentity injects a verified identity into the context.
func WithIdentity(ctx context.Context, identity AuthIdentity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

// UserID retrieves the authenticated user id, or the nil id when the
// request is unauthenticated.
func UserID(ctx context.Context) id.UserID {
	identity, ok := Identity(ctx)
	if !ok {
		return id.UserID{}
	}
	return identity.UserID
}

// RequestID retrieves the request correlation id from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request correlation id into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context. Falls back to
// time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service
// unit tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
