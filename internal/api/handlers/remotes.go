package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/galaxyops/hub-console/internal/actions"
	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
)

// ListRemotes proxies the hub collection remote list.
func (s *Server) ListRemotes(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListRemotes(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// DeleteRemote runs the remote delete action.
func (s *Server) DeleteRemote(w http.ResponseWriter, r *http.Request) {
	remote, err := s.hub.GetRemote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	dispatch(s, w, r, actions.RemoteDelete, *remote, remote.Name, nil)
}
