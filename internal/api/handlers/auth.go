package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/api/middleware"
	"github.com/galaxyops/hub-console/internal/auth"
)

// Login verifies operator credentials and issues a session token, both as a
// cookie for the browser and in the body for API clients.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		apierrors.WriteError(w, apierrors.NewValidationError("username and password are required"))
		return
	}

	token, err := s.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			apierrors.WriteError(w, apierrors.NewUnauthorizedError("Invalid username or password."))
			return
		}
		s.logger.Error("login failed", "username", req.Username, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("login failed"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout clears the session cookie. Tokens are stateless; the client drops
// its copy.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated operator and its permission set.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		apierrors.WriteError(w, apierrors.NewUnauthorizedError("Authentication required"))
		return
	}

	perms := make([]string, 0, len(sess.Permissions))
	for p := range sess.Permissions {
		perms = append(perms, p)
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"username":     sess.Operator.Username,
		"groups":       sess.Operator.Groups,
		"is_superuser": sess.Operator.IsSuperuser,
		"permissions":  perms,
	})
}
