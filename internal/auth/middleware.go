package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cadotvn/cadot-user/internal/models"
	"github.com/cadotvn/cadot-user/internal/store"
)

type contextKey string

const userContextKey = contextKey("currentUser")

// Middleware protects routes by resolving the request's bearer token to a
// user record and stashing it in the request context. It does not check
// is_active — handlers gate on that explicitly, so a valid token keeps
// resolving until an endpoint consults the flag.
func Middleware(tokens *TokenService, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			// 2. If not in the header, fall back to the cookie
			if tokenStr == "" {
				cookie, err := r.Cookie("token")
				if err != nil {
					http.Error(w, "Missing auth token", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			subject, err := tokens.Resolve(tokenStr)
			if err != nil {
				http.Error(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(r.Context(), subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					http.Error(w, "User not found", http.StatusNotFound)
					return
				}
				log.Error().Err(err).Str("user_id", subject).Msg("Failed to load user from token subject")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stashed by Middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}
