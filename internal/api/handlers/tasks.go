package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/galaxyops/hub-console/internal/actions"
	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/hub"
)

// ListTasks proxies the hub task list.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := s.hub.ListTasks(r.Context(), listParams(r))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// GetTask returns one task.
func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.hub.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

// StopTask runs the stop action for a waiting or running task.
func (s *Server) StopTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.hub.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}
	dispatch(s, w, r, actions.TaskStop, *task, task.DisplayName(), nil)
}

// CleanupOrphans starts an orphan cleanup run on the hub.
func (s *Server) CleanupOrphans(w http.ResponseWriter, r *http.Request) {
	dispatch(s, w, r, actions.OrphanCleanup, hub.Task{}, "orphans", nil)
}

// StreamTask upgrades to a websocket and pushes task state transitions until
// the task reaches a terminal state or the client disconnects.
func (s *Server) StreamTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.hub.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade websocket", "error", err)
		return
	}
	defer conn.Close()

	for update := range s.passivePoller.Watch(r.Context(), task.PulpHref) {
		msg := map[string]any{"phase": update.Phase}
		if update.Task != nil {
			msg["task"] = update.Task
		}
		if update.Err != nil {
			msg["error"] = update.Err.Error()
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
