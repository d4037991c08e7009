package middleware

import (
	"context"
	"net/http"
	"strings"
)

const ActorKey contextKey = "actor"

const ActorHeader = "X-Actor"

// ActorIdentity reads the authenticated principal from the X-Actor header
// and stores it on the request context. The header is set by the gateway
// after authentication; requests without it proceed as anonymous and each
// handler decides whether the operation requires an actor.
func ActorIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := strings.TrimSpace(r.Header.Get(ActorHeader))
			if actor != "" {
				ctx := context.WithValue(r.Context(), ActorKey, actor)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Actor returns the principal attached to the request, or "" when the
// request is anonymous.
func Actor(r *http.Request) string {
	if v := r.Context().Value(ActorKey); v != nil {
		if actor, ok := v.(string); ok {
			return actor
		}
	}
	return ""
}
