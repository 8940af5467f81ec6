package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/galaxyops/hub-console/internal/auth"
)

// Context keys for session information.
type contextKey string

// SessionKey is the context key for the resolved operator session.
const SessionKey contextKey = "session"

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "console_session"

// GetSession extracts the operator session from the request context.
func GetSession(ctx context.Context) *auth.Session {
	if v := ctx.Value(SessionKey); v != nil {
		return v.(*auth.Session)
	}
	return nil
}

// GetUsername extracts the authenticated operator username from the request
// context.
func GetUsername(ctx context.Context) string {
	if sess := GetSession(ctx); sess != nil && sess.Operator != nil {
		return sess.Operator.Username
	}
	return ""
}

// AuthMiddleware validates session tokens and attaches the resolved session.
type AuthMiddleware struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new authentication middleware.
func NewAuthMiddleware(authService *auth.Service, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Authenticate validates the session token from either the session cookie or
// the Authorization header, resolves the operator's permission set and stores
// the session in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.tokenFromRequest(r)
		if token == "" {
			writeUnauthorized(w, "Missing authentication")
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			m.logger.Debug("token validation failed", "error", err)
			if err == auth.ErrExpiredToken {
				writeUnauthorized(w, "Session has expired")
				return
			}
			writeUnauthorized(w, "Invalid session")
			return
		}

		sess, err := m.authService.ResolveSession(r.Context(), claims)
		if err != nil {
			m.logger.Debug("session resolution failed", "username", claims.Username, "error", err)
			writeUnauthorized(w, "Invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if token := auth.ExtractBearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// RequirePermission returns a middleware that rejects requests whose session
// does not hold the given permission codename. Superusers always pass.
func RequirePermission(permission string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if sess == nil {
				writeUnauthorized(w, "Authentication required")
				return
			}
			if !sess.HasPermission(permission) {
				logger.Debug("permission check failed",
					"username", sess.Operator.Username,
					"permission", permission,
				)
				writeForbidden(w, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"code":"unauthorized","message":"` + escapeJSON(message) + `"}`))
}

func writeForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"code":"forbidden","message":"` + escapeJSON(message) + `"}`))
}

func escapeJSON(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
