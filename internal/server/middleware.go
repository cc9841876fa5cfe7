package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type ctxKey int

const (
	ctxKeyHunt ctxKey = iota
	ctxKeyHunter
)

func huntMiddleware(hunts *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "hunt")
			h, ok := hunts.Get(id)
			if !ok {
				writeError(w, http.StatusNotFound, "hunt not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyHunt, h)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// hostAuthMiddleware guards the setup-mode endpoints: the bearer token
// must have been issued to this hunt's host.
func hostAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := huntFrom(r)
			token, ok := bearerToken(r)
			if !ok || !h.IsHostToken(token) {
				writeError(w, http.StatusUnauthorized, "host token required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// hunterAuthMiddleware guards the play-mode endpoints with the token
// issued at join.
func hunterAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := huntFrom(r)
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}
			name, ok := h.HunterName(token)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyHunter, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	return token, found && token != ""
}

func huntFrom(r *http.Request) *LiveHunt {
	return r.Context().Value(ctxKeyHunt).(*LiveHunt)
}

func hunterFrom(r *http.Request) string {
	name, _ := r.Context().Value(ctxKeyHunter).(string)
	return name
}
