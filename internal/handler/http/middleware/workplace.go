package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/haken-hr/kyuyo-backend-go/internal/handler/http/response"
)

// WorkplaceScoped restricts a route carrying a {workplaceID} parameter to
// users whose token lists that workplace. Admins bypass the check.
func WorkplaceScoped(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		if role, _ := claims["role"].(string); role == "admin" {
			next.ServeHTTP(w, r)
			return
		}

		workplaceID := chi.URLParam(r, "workplaceID")
		if ids, ok := claims["workplace_ids"].([]interface{}); ok {
			for _, id := range ids {
				if s, ok := id.(string); ok && s == workplaceID {
					next.ServeHTTP(w, r)
					return
				}
			}
		}

		response.Forbidden(w, "Workplace not permitted for this user")
	})
}
