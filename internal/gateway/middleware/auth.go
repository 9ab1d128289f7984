package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anuragc10/academiapro/internal/modules/auth/infrastructure/jwt"
)

type contextKey string

const (
	ContextKeyUserId contextKey = "user_id"
	ContextKeyRole   contextKey = "role"
)

type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware creates and returns a new instance of AuthMiddleware.
// The jwtSecret parameter is the secret key used for verifying JWT tokens.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

// RequireAuth is a middleware function that enforces authentication on HTTP requests.
// It validates the presence and format of a Bearer token in the Authorization header
// (falling back to a "token" query parameter, needed for websocket upgrades),
// verifies the token's validity and expiration, and injects the authenticated user's
// ID and role into the request context for downstream handlers.
// If authentication fails at any step, it returns a 401 Unauthorized response.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""
		authHeader := r.Header.Get("Authorization")

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			tokenStr = r.URL.Query().Get("token")
		}

		if tokenStr == "" {
			http.Error(w, `{"error": "missing or invalid authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			http.Error(w, `{"error": "invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserId, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a route to callers whose token carries one of the
// given roles. Must be wrapped inside RequireAuth so the role is already
// present in the context.
func (m *AuthMiddleware) RequireRole(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(ContextKeyRole).(string)
		if !ok {
			http.Error(w, `{"error": "missing role"}`, http.StatusForbidden)
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, `{"error": "insufficient permissions"}`, http.StatusForbidden)
	})
}
