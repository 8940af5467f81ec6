package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/galaxyops/hub-console/internal/actions"
	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/hub"
)

// ListHubUsers proxies the hub user list.
func (s *Server) ListHubUsers(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListUsers(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// DeleteHubUser runs the user delete action.
func (s *Server) DeleteHubUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("user id must be numeric"))
		return
	}

	user, ok := s.findHubUser(w, r, id)
	if !ok {
		return
	}
	dispatch(s, w, r, actions.UserDelete, *user, user.Username, nil)
}

// ListHubGroups proxies the hub group list.
func (s *Server) ListHubGroups(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListGroups(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// DeleteHubGroup runs the group delete action.
func (s *Server) DeleteHubGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("group id must be numeric"))
		return
	}

	group, ok := s.findHubGroup(w, r, id)
	if !ok {
		return
	}
	dispatch(s, w, r, actions.GroupDelete, *group, group.Name, nil)
}

// The hub UI API has no single-user fetch; look the principal up through the
// list endpoint by ID.
func (s *Server) findHubUser(w http.ResponseWriter, r *http.Request, id int) (*hub.User, bool) {
	page, err := s.hub.ListUsers(r.Context(), hub.Params{Limit: 100})
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return nil, false
	}
	for i := range page.Results {
		if page.Results[i].ID == id {
			return &page.Results[i], true
		}
	}
	apierrors.WriteError(w, apierrors.NewNotFoundError("User not found."))
	return nil, false
}

func (s *Server) findHubGroup(w http.ResponseWriter, r *http.Request, id int) (*hub.Group, bool) {
	page, err := s.hub.ListGroups(r.Context(), hub.Params{Limit: 100})
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return nil, false
	}
	for i := range page.Results {
		if page.Results[i].ID == id {
			return &page.Results[i], true
		}
	}
	apierrors.WriteError(w, apierrors.NewNotFoundError("Group not found."))
	return nil, false
}
