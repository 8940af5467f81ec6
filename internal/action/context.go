// Package action implements the console's declarative action layer. An
// action bundles one user-triggerable operation — its permission gate,
// visibility and disablement predicates, optional confirmation modal, and its
// effect — as pure configuration that views project into renderable controls.
package action

import (
	"context"
	"log/slog"
	"sync"

	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// Alerter receives user-visible notifications.
type Alerter interface {
	// Add appends an alert and returns its ID.
	Add(a alerts.Alert) string
	// Remove deletes a previously added alert by ID.
	Remove(id string)
}

// State is the string-keyed mutable UI state owned by the view that renders a
// set of actions (open modals, selections). Actions hold no state of their
// own; everything transient lives here.
type State struct {
	mu     sync.Mutex
	values map[string]any
}

// NewState creates an empty state store.
func NewState() *State {
	return &State{values: map[string]any{}}
}

// Get returns the value for key, or nil.
func (s *State) Get(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set stores a value under key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key.
func (s *State) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Context is the facade threaded into every action predicate and handler. It
// is supplied by the view (request handler or CLI command) that renders the
// actions and wraps that view's state plus the session's capabilities.
// Nothing here is ambient; the context is an explicit parameter everywhere.
type Context struct {
	// Hub is the API client bound to the session's credentials.
	Hub *hub.Client
	// Poller waits on task-backed operations.
	Poller *tasks.Poller
	// Alerts receives success/failure notifications.
	Alerts Alerter
	// State is the owning view's mutable UI state.
	State *State
	// Query re-fetches the list or detail data backing the view.
	Query func(ctx context.Context) error
	// Navigate switches the UI to another path.
	Navigate func(path string)
	// HasPermission checks a hub permission codename, e.g.
	// "ansible.delete_collectionremote", against the session.
	HasPermission func(name string) bool
	// Logger is the request-scoped logger.
	Logger *slog.Logger
}

// AddAlert appends an alert when an alerter is attached.
func (c *Context) AddAlert(a alerts.Alert) string {
	if c.Alerts == nil {
		return ""
	}
	return c.Alerts.Add(a)
}

// RemoveAlert removes an alert by ID when an alerter is attached.
func (c *Context) RemoveAlert(id string) {
	if c.Alerts != nil {
		c.Alerts.Remove(id)
	}
}

// Refresh re-queries the backing data, swallowing a nil Query.
func (c *Context) Refresh(ctx context.Context) {
	if c.Query != nil {
		if err := c.Query(ctx); err != nil && c.Logger != nil {
			c.Logger.Warn("refresh after action failed", "error", err)
		}
	}
}

// Allowed checks a permission, treating a missing checker as denied.
func (c *Context) Allowed(name string) bool {
	return c.HasPermission != nil && c.HasPermission(name)
}
