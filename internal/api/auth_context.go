package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gameshubapp/gameshub-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userIDKey is the context key for the authenticated user ID.
const userIDKey ctxKey = "userID"

// GetUserID returns the authenticated user ID from context.
// Returns a 401 error if the request carried no valid token.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return userID, nil
}

// setUserID stores the user ID in context.
func setUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// authMiddleware returns a middleware that validates Bearer tokens and stores
// the user ID in context. If no token is present or it is invalid, the request
// continues without a user; handlers call GetUserID to enforce authentication.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := authHeader[7:]
			account, _, err := auth.VerifyAccessToken(r.Context(), token)
			if err != nil {
				// Invalid token: continue anonymous, protected handlers reject.
				next.ServeHTTP(w, r)
				return
			}

			ctx := setUserID(r.Context(), account.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
