package middleware

import (
	"context"
	"net/http"
)

const (
	ActorIDKey   contextKey = "actor_id"
	ActorRoleKey contextKey = "actor_role"

	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// Actor copies the acting identity supplied by the upstream authorization
// layer into the request context. The identity is trusted as given; this
// service performs no authentication of its own.
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := r.Header.Get(HeaderActorID); id != "" {
				ctx = context.WithValue(ctx, ActorIDKey, id)
			}
			if role := r.Header.Get(HeaderActorRole); role != "" {
				ctx = context.WithValue(ctx, ActorRoleKey, role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the acting identity, or "" when the request
// carried none.
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ActorIDKey).(string); ok {
		return id
	}
	return ""
}

// WithActor attaches an acting identity to the context. Handlers use it to
// honour an actor supplied in the request body when no header was sent.
func WithActor(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ActorIDKey, id)
}
