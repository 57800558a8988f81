package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/pokerclub/internal/api/apierr"
)

// AdminPasswordHeader carries the admin password on mutating requests
const AdminPasswordHeader = "X-Admin-Password"

// RequireAdmin rejects requests whose admin password does not match the
// bcrypt hash. An empty hash disables the check.
func RequireAdmin(passwordHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if passwordHash == "" {
			return next
		}
		hash := []byte(passwordHash)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := r.Header.Get(AdminPasswordHeader)
			if password == "" || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				logger.Warn("admin check failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
