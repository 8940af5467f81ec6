package action

import (
	"context"
	"sync"
)

// Modal is the view model for a confirmation or collection dialog. The modal
// knows nothing about the hub: the mutation it confirms is injected as the
// Confirm function by the action that opened it.
type Modal struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body,omitempty"`
	ConfirmLabel string `json:"confirm_label"`
	CancelLabel  string `json:"cancel_label"`
	// Danger marks destructive confirmations for styling.
	Danger bool `json:"danger,omitempty"`

	confirm func(context.Context) error
	cancel  func()

	mu      sync.Mutex
	pending bool
}

// NewModal builds a modal whose Confirm runs the injected mutation and whose
// Cancel runs the injected close callback.
func NewModal(id, title, body, confirmLabel string, confirm func(context.Context) error, cancel func()) *Modal {
	return &Modal{
		ID:           id,
		Title:        title,
		Body:         body,
		ConfirmLabel: confirmLabel,
		CancelLabel:  "Cancel",
		confirm:      confirm,
		cancel:       cancel,
	}
}

// Pending reports whether a confirmation is in flight. The UI disables the
// confirm control while pending to keep a double click from submitting the
// operation twice.
func (m *Modal) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Confirm runs the modal's mutation. A second Confirm while the first is in
// flight is ignored.
func (m *Modal) Confirm(ctx context.Context) error {
	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return nil
	}
	m.pending = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()
	return m.confirm(ctx)
}

// Cancel closes the modal without running the mutation.
func (m *Modal) Cancel() {
	if m.cancel != nil {
		m.cancel()
	}
}
