package httpapi

import (
	"context"
	"net/http"
	"strings"

	"education-backend-go/internal/models"
)

type contextKey string

const ctxUser contextKey = "user"

// WithAuth resolves the bearer token to a full user (with role) and
// stores it on the request context. Any resolution failure ends the
// request with the translated domain error.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			WriteError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		user, err := s.registry().Auth.CurrentUser(r.Context(), token)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CurrentUser(r *http.Request) *models.User {
	if user, ok := r.Context().Value(ctxUser).(models.User); ok {
		return &user
	}
	return nil
}

// RequirePermission gates a route behind the dynamic role/endpoint
// permission matrix, keyed by the route tag.
func (s *Server) RequirePermission(endpointName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r)
			if _, err := s.registry().Permissions.CheckPermission(r.Context(), endpointName, user, true); err != nil {
				WriteDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
