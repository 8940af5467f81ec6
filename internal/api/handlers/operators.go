package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/api/middleware"
	"github.com/galaxyops/hub-console/internal/auth"
)

// ListOperators returns all console operator accounts.
func (s *Server) ListOperators(w http.ResponseWriter, r *http.Request) {
	ops, err := s.store.Operators().List(r.Context())
	if err != nil {
		s.logger.Error("failed to list operators", "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to list operators"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"operators": ops})
}

// CreateOperator creates a console operator account.
func (s *Server) CreateOperator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string   `json:"username"`
		Password    string   `json:"password"`
		IsSuperuser bool     `json:"is_superuser"`
		Groups      []string `json:"groups"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("invalid request body"))
		return
	}

	var verrs apierrors.ValidationErrors
	if req.Username == "" {
		verrs.Add("username", "username is required")
	}
	if len(req.Password) < 8 {
		verrs.Add("password", "password must be at least 8 characters")
	}
	if verrs.HasErrors() {
		apierrors.WriteError(w, verrs.ToAPIError())
		return
	}

	existing, err := s.store.Operators().GetByUsername(r.Context(), req.Username)
	if err == nil && existing != nil {
		apierrors.WriteError(w, apierrors.NewConflictError("operator already exists"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to create operator"))
		return
	}

	op, err := s.store.Operators().Create(r.Context(), req.Username, hash, req.IsSuperuser)
	if err != nil {
		s.logger.Error("failed to create operator", "username", req.Username, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to create operator"))
		return
	}
	if len(req.Groups) > 0 {
		if err := s.store.Operators().SetGroups(r.Context(), req.Username, req.Groups); err != nil {
			s.logger.Error("failed to set operator groups", "username", req.Username, "error", err)
			apierrors.WriteError(w, apierrors.NewInternalError("failed to set operator groups"))
			return
		}
		op.Groups = req.Groups
	}

	s.audit(r, "Create operator", req.Username, true)
	WriteJSON(w, http.StatusCreated, op)
}

// SetOperatorGroups replaces an operator's group memberships.
func (s *Server) SetOperatorGroups(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req struct {
		Groups []string `json:"groups"`
	}
	if err := decodeJSON(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("invalid request body"))
		return
	}

	if err := s.store.Operators().SetGroups(r.Context(), username, req.Groups); err != nil {
		s.logger.Error("failed to set operator groups", "username", username, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to set operator groups"))
		return
	}

	s.audit(r, "Set operator groups", username, true)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteOperator removes a console operator account. Operators cannot delete
// themselves.
func (s *Server) DeleteOperator(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == middleware.GetUsername(r.Context()) {
		apierrors.WriteError(w, apierrors.NewConflictError("you cannot delete your own account"))
		return
	}

	if err := s.store.Operators().Delete(r.Context(), username); err != nil {
		s.logger.Error("failed to delete operator", "username", username, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to delete operator"))
		return
	}

	s.audit(r, "Delete operator", username, true)
	w.WriteHeader(http.StatusNoContent)
}

// AddGrant grants a hub permission codename to a console group.
func (s *Server) AddGrant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Group      string `json:"group"`
		Permission string `json:"permission"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Group == "" || req.Permission == "" {
		apierrors.WriteError(w, apierrors.NewValidationError("group and permission are required"))
		return
	}

	if err := s.store.Grants().Add(r.Context(), req.Group, req.Permission); err != nil {
		s.logger.Error("failed to add grant", "group", req.Group, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to add grant"))
		return
	}

	s.audit(r, "Add grant", req.Group+":"+req.Permission, true)
	w.WriteHeader(http.StatusNoContent)
}

// RemoveGrant revokes a permission grant from a console group.
func (s *Server) RemoveGrant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Group      string `json:"group"`
		Permission string `json:"permission"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Group == "" || req.Permission == "" {
		apierrors.WriteError(w, apierrors.NewValidationError("group and permission are required"))
		return
	}

	if err := s.store.Grants().Remove(r.Context(), req.Group, req.Permission); err != nil {
		s.logger.Error("failed to remove grant", "group", req.Group, "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to remove grant"))
		return
	}

	s.audit(r, "Remove grant", req.Group+":"+req.Permission, true)
	w.WriteHeader(http.StatusNoContent)
}
