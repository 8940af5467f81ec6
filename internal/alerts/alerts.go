// Package alerts holds the console's user-facing notification model and the
// normalization of API failures into renderable alert descriptions.
package alerts

import (
	"sync"

	"github.com/google/uuid"
)

// Variant is the severity of an alert.
type Variant string

// Alert severities.
const (
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// Alert is a dismissible user-visible notification.
type Alert struct {
	// ID lets a later event remove a specific in-flight alert, e.g. a
	// "signing in progress" notice cleared when the signing task finishes.
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// New creates an alert with a fresh ID.
func New(variant Variant, title, description string) Alert {
	return Alert{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Variant:     variant,
	}
}

// Success creates a success alert.
func Success(title, description string) Alert {
	return New(VariantSuccess, title, description)
}

// Danger creates a danger alert.
func Danger(title, description string) Alert {
	return New(VariantDanger, title, description)
}

// Info creates an info alert.
func Info(title, description string) Alert {
	return New(VariantInfo, title, description)
}

// List is an ordered collection of alerts owned by one session. Appends and
// removals interleave from request handlers, so access is serialized.
type List struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewList creates an empty alert list.
func NewList() *List {
	return &List{}
}

// Add appends an alert and returns its ID.
func (l *List) Add(a Alert) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	l.alerts = append(l.alerts, a)
	return a.ID
}

// Remove deletes the alert with the given ID, if present.
func (l *List) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, a := range l.alerts {
		if a.ID == id {
			l.alerts = append(l.alerts[:i], l.alerts[i+1:]...)
			return
		}
	}
}

// All returns a snapshot of the alerts in insertion order.
func (l *List) All() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// Clear removes every alert.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = nil
}
