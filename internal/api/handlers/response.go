package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/galaxyops/hub-console/internal/api/errors"
	"github.com/galaxyops/hub-console/internal/api/middleware"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/store"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	apierrors.WriteJSON(w, status, data)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// recordingAlerter feeds the console-wide alert list and keeps a copy of the
// alerts raised during one request so they can be returned in the response.
type recordingAlerter struct {
	list  *alerts.List
	local []alerts.Alert
}

func (a *recordingAlerter) Add(alert alerts.Alert) string {
	id := a.list.Add(alert)
	alert.ID = id
	a.local = append(a.local, alert)
	return id
}

func (a *recordingAlerter) Remove(id string) {
	a.list.Remove(id)
	for i, alert := range a.local {
		if alert.ID == id {
			a.local = append(a.local[:i], a.local[i+1:]...)
			break
		}
	}
}

// actionResult is the response body of an action dispatch endpoint.
type actionResult struct {
	Alerts []alerts.Alert `json:"alerts"`
}

// actionContext builds the per-request action context: a fresh view state, a
// recording alerter over the shared feed and the session's permission set.
func (s *Server) actionContext(r *http.Request) (*action.Context, *recordingAlerter) {
	rec := &recordingAlerter{list: s.alerts}
	actx := &action.Context{
		Hub:           s.hub,
		Poller:        s.poller,
		Alerts:        rec,
		State:         action.NewState(),
		HasPermission: permissionChecker(r),
		Logger:        s.logger,
	}
	return actx, rec
}

// dispatch projects an action's button for the item, invokes it, and
// confirms its dialog if one opened. The HTTP request carries the operator's
// confirmation; the browser shows its own dialog before calling the
// endpoint. The seed callback runs between OnClick and Confirm so dialog
// selections land in the opened state.
func dispatch[T any](s *Server, w http.ResponseWriter, r *http.Request, def *action.Definition[T], item T, subject string, seed func(*action.Context)) {
	actx, rec := s.actionContext(r)

	control := def.Button(item, actx)
	if control == nil {
		apierrors.WriteError(w, apierrors.NewForbiddenError("Action is not available."))
		return
	}

	err := control.Invoke(r.Context())
	if err == nil && seed != nil {
		seed(actx)
	}
	if err == nil {
		if modal := def.Modal(r.Context(), actx); modal != nil {
			err = modal.Confirm(r.Context())
		}
	}

	s.audit(r, def.Title(), subject, err == nil && !hasFailure(rec.local))

	if err != nil {
		if errors.Is(err, action.ErrDisabled) {
			apierrors.WriteError(w, apierrors.NewConflictError(control.DisabledReason))
			return
		}
		apierrors.WriteError(w, apierrors.FromHub(err))
		return
	}

	WriteJSON(w, http.StatusOK, actionResult{Alerts: rec.local})
}

func hasFailure(raised []alerts.Alert) bool {
	for _, a := range raised {
		if a.Variant == alerts.VariantDanger {
			return true
		}
	}
	return false
}

// audit records an executed action. Audit failures are logged, never
// surfaced; the action already happened.
func (s *Server) audit(r *http.Request, actionName, subject string, succeeded bool) {
	entry := &store.AuditEntry{
		Operator:  middleware.GetUsername(r.Context()),
		Action:    actionName,
		Subject:   subject,
		Succeeded: succeeded,
		CreatedAt: time.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Audit().Record(ctx, entry); err != nil {
		s.logger.Error("failed to record audit entry", "action", actionName, "error", err)
	}
}
