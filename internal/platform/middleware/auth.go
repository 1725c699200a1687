package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"pawboard/internal/platform/metrics"
	id "pawboard/pkg/domain"
	"pawboard/pkg/requestcontext"
)

// TokenValidator defines the interface for validating session tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	UserID id.UserID
	Email  string
	Role   string
}

// RequireAuth extracts and verifies the bearer token, then injects the
// verified identity into the request context. On any failure it
// short-circuits with a single generic 401: the response never reveals
// whether the token was missing, malformed, expired, or badly signed.
func RequireAuth(validator TokenValidator, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "

			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				m.IncrementAuthFailure()
				writeUnauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				m.IncrementAuthFailure()
				writeUnauthorized(w)
				return
			}

			ctx = requestcontext.WithIdentity(ctx, requestcontext.AuthIdentity{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
