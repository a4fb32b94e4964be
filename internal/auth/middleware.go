package auth

import (
	"log/slog"
	"net/http"

	"github.com/caterflow/caterflow/internal/platform/httpx"
	"github.com/caterflow/caterflow/internal/shared"
)

// RequireSession rejects requests whose session carries no signed-in user.
func RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || sess.User() == "" {
				if logger != nil {
					logger.Debug("unauthenticated request", slog.String("path", r.URL.Path))
				}
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
