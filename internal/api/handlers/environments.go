package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/galaxyops/hub-console/internal/actions"
	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// ListNamespaces proxies the collection namespace list.
func (s *Server) ListNamespaces(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListNamespaces(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// DeleteNamespace deletes a collection namespace. The namespace must be
// empty; the hub rejects the deletion otherwise and the alert carries its
// reason.
func (s *Server) DeleteNamespace(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	_, rec := s.actionContext(r)

	resp, err := s.hub.DeleteNamespace(r.Context(), name)
	s.audit(r, "Delete namespace", name, err == nil)
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	rec.Add(tasks.StartedAlert(resp.Task, "Deletion of namespace "+name+" started."))
	WriteJSON(w, http.StatusOK, actionResult{Alerts: rec.local})
}

// ListExecutionEnvironments proxies the execution environment list.
func (s *Server) ListExecutionEnvironments(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListExecutionEnvironments(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// DeleteExecutionEnvironment runs the execution environment delete action.
func (s *Server) DeleteExecutionEnvironment(w http.ResponseWriter, r *http.Request) {
	ee, ok := s.findExecutionEnvironment(w, r, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	dispatch(s, w, r, actions.ExecutionEnvironmentDelete, *ee, ee.Name, nil)
}

// SyncExecutionEnvironment runs the execution environment sync action.
func (s *Server) SyncExecutionEnvironment(w http.ResponseWriter, r *http.Request) {
	ee, ok := s.findExecutionEnvironment(w, r, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	dispatch(s, w, r, actions.ExecutionEnvironmentSync, *ee, ee.Name, nil)
}

func (s *Server) findExecutionEnvironment(w http.ResponseWriter, r *http.Request, name string) (*hub.ExecutionEnvironment, bool) {
	page, err := s.hub.ListExecutionEnvironments(r.Context(), hub.Params{
		Limit:   10,
		Filters: map[string]string{"name": name},
	})
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return nil, false
	}
	for i := range page.Results {
		if page.Results[i].Name == name {
			return &page.Results[i], true
		}
	}
	apierrors.WriteError(w, apierrors.NewNotFoundError("Execution environment not found."))
	return nil, false
}
