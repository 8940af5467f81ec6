package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
)

// PutCredential encrypts and stores a named hub credential. The plaintext
// never touches the database.
func (s *Server) PutCredential(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		apierrors.WriteError(w, apierrors.NewValidationError("token is required"))
		return
	}

	if s.cipher == nil || !s.cipher.CanEncrypt() {
		apierrors.WriteError(w, apierrors.NewConflictError("credential encryption is not configured"))
		return
	}

	ciphertext, err := s.cipher.Encrypt([]byte(req.Token))
	if err != nil {
		s.logger.Error("failed to encrypt credential", "name", name, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to encrypt credential"))
		return
	}

	if err := s.store.Credentials().Put(r.Context(), name, ciphertext); err != nil {
		s.logger.Error("failed to store credential", "name", name, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to store credential"))
		return
	}

	s.audit(r, "Store credential", name, true)
	w.WriteHeader(http.StatusNoContent)
}

// GetCredential reports whether a credential exists and when it changed. The
// token itself is never returned.
func (s *Server) GetCredential(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	cred, err := s.store.Credentials().Get(r.Context(), name)
	if err != nil {
		s.logger.Error("failed to load credential", "name", name, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to load credential"))
		return
	}
	if cred == nil {
		apierrors.WriteError(w, apierrors.NewNotFoundError("credential not found"))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"name":       cred.Name,
		"updated_at": cred.UpdatedAt,
	})
}

// DeleteCredential removes a stored credential.
func (s *Server) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.store.Credentials().Delete(r.Context(), name); err != nil {
		s.logger.Error("failed to delete credential", "name", name, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to delete credential"))
		return
	}

	s.audit(r, "Delete credential", name, true)
	w.WriteHeader(http.StatusNoContent)
}
