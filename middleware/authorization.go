package middleware

import (
	"encoding/json"
	"net/http"
)

// RequirePermission denies the request unless the authenticated user's roles
// carry the named permission. Must run after JWTMiddleware.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				unauthorized(w, "Token tidak ditemukan")
				return
			}
			if !user.HasPermission(permission) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": "Tidak memiliki izin untuk aksi ini",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
