package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
)

// ListAudit returns the most recent audit entries, newest first.
func (s *Server) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	entries, err := s.store.Audit().List(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err)
		apierrors.WriteError(w, apierrors.NewInternalError("failed to list audit entries"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
