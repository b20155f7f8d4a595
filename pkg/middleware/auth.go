package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Authenticate requires a valid "Authorization: Bearer <jwt>" header and
// stores the caller's auth.Identity in the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			logger.WithCtx(r.Context()).Debug("auth: token rejected", "error", err)
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := auth.WithIdentity(r.Context(), auth.Identity{UserID: claims.UserID, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := auth.FromContext(r.Context())
	return id.UserID, ok
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	id, ok := auth.FromContext(r.Context())
	return id.Role, ok
}
