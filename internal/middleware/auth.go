package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"inner-garden/internal/service"
)

type contextKey string

const (
	// AdminEmailKey carries the authorized admin email through the request.
	AdminEmailKey contextKey = "admin_email"

	adminTokenHeader = "x-admin-token"
)

// AdminAuthMiddleware resolves the bearer token to an admin session before
// any admin endpoint runs. The token comes from the Authorization header or,
// interchangeably, from the x-admin-token header.
func AdminAuthMiddleware(sessions service.SessionService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				logger.Debug("Missing admin token",
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			session, err := sessions.Authorize(token)
			if err != nil {
				logger.Debug("Admin token rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), AdminEmailKey, session.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from either supported header. The two
// headers are interchangeable; a non-Bearer Authorization header does not
// shadow a token supplied via x-admin-token.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(r.Header.Get(adminTokenHeader))
}

// GetAdminEmail extracts the authorized admin email from request context.
func GetAdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(AdminEmailKey).(string)
	return email, ok
}
