package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListAlerts returns the console-wide alert feed in insertion order.
func (s *Server) ListAlerts(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"alerts": s.alerts.All()})
}

// DismissAlert removes one alert by ID. Dismissing an unknown ID is a no-op.
func (s *Server) DismissAlert(w http.ResponseWriter, r *http.Request) {
	s.alerts.Remove(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
