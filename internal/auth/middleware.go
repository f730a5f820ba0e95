package auth

import (
	"context"
	"net/http"

	"todoapi/internal/user"
)

// TokenHeader is the request header carrying the session token, and the
// response header register and login return a fresh token in.
const TokenHeader = "x-auth"

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey  ContextKey = "auth_user"
	TokenContextKey ContextKey = "auth_token"
)

// Middleware guards routes that require an authenticated caller.
type Middleware struct {
	service *Service
}

func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth resolves the x-auth header to a user before the handler runs.
// Every failure is the same empty 401: the client learns nothing about
// whether the token was missing, malformed, forged or revoked.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		resolved, err := m.service.Resolve(r.Context(), token)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, resolved)
		ctx = context.WithValue(ctx, TokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	return u, ok
}

// GetTokenFromContext extracts the raw session token from the request context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey).(string)
	return token, ok
}
