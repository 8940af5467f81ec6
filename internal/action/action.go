package action

import (
	"context"
	"errors"
)

// ErrDisabled is returned when Invoke is called on an inert control.
var ErrDisabled = errors.New("action is disabled")

// Variant selects the button styling of an action's primary projection.
type Variant string

// Button variants understood by the UI.
const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantDanger    Variant = "danger"
)

// Params configures one action. Title and OnClick are required; the
// predicates default to "always offered, always enabled".
type Params[T any] struct {
	// Title is the control label.
	Title string
	// ButtonVariant styles the button projection. Defaults to primary.
	ButtonVariant Variant
	// Condition gates whether the action is offered at all, typically a
	// permission check. Defaults to true.
	Condition func(item T, ctx *Context) bool
	// Visible is a second, independently overridable offering predicate.
	// Both Condition and Visible must pass for the action to render.
	// Defaults to true.
	Visible func(item T, ctx *Context) bool
	// Disabled returns a non-empty reason when the action is temporarily
	// unavailable; the control renders inert with the reason attached.
	// Defaults to enabled.
	Disabled func(item T, ctx *Context) string
	// OnClick performs the action: open a confirmation modal via ctx.State,
	// or call the hub directly.
	OnClick func(c context.Context, item T, ctx *Context) error
	// Modal projects the action's confirmation dialog from the view state,
	// returning nil while the dialog is closed. Absent for actions that
	// execute immediately.
	Modal func(c context.Context, ctx *Context) *Modal
}

// Definition is an evaluated action: pure configuration constructed once at
// package level and projected fresh on every render against the current item
// and context.
type Definition[T any] struct {
	params Params[T]
}

// Define builds a Definition, filling in predicate defaults.
func Define[T any](p Params[T]) *Definition[T] {
	if p.Condition == nil {
		p.Condition = func(T, *Context) bool { return true }
	}
	if p.Visible == nil {
		p.Visible = func(T, *Context) bool { return true }
	}
	if p.Disabled == nil {
		p.Disabled = func(T, *Context) string { return "" }
	}
	if p.ButtonVariant == "" {
		p.ButtonVariant = VariantPrimary
	}
	return &Definition[T]{params: p}
}

// Title returns the action's label.
func (d *Definition[T]) Title() string { return d.params.Title }

// ControlKind distinguishes the two renderable projections of an action.
type ControlKind string

// Control projections.
const (
	KindButton       ControlKind = "button"
	KindDropdownItem ControlKind = "dropdown-item"
)

// Control is the view model for one rendered action control. A nil Control
// means the action is not offered for this item.
type Control struct {
	Title          string      `json:"title"`
	Kind           ControlKind `json:"kind"`
	Variant        Variant     `json:"variant,omitempty"`
	Disabled       bool        `json:"disabled"`
	DisabledReason string      `json:"disabled_reason,omitempty"`

	invoke func(context.Context) error
}

// Invoke activates the control. An enabled control runs the action's OnClick
// exactly once; an inert control returns ErrDisabled without side effects.
func (c *Control) Invoke(ctx context.Context) error {
	if c.Disabled {
		return ErrDisabled
	}
	return c.invoke(ctx)
}

// Button projects the action as a standalone button for the given item.
// Returns nil when Condition or Visible rejects the item.
func (d *Definition[T]) Button(item T, ctx *Context) *Control {
	return d.project(KindButton, item, ctx)
}

// DropdownItem projects the action as a kebab-menu entry for the given item.
// Returns nil when Condition or Visible rejects the item.
func (d *Definition[T]) DropdownItem(item T, ctx *Context) *Control {
	return d.project(KindDropdownItem, item, ctx)
}

func (d *Definition[T]) project(kind ControlKind, item T, ctx *Context) *Control {
	if !d.params.Condition(item, ctx) || !d.params.Visible(item, ctx) {
		return nil
	}

	control := &Control{
		Title:   d.params.Title,
		Kind:    kind,
		Variant: d.params.ButtonVariant,
	}
	if reason := d.params.Disabled(item, ctx); reason != "" {
		control.Disabled = true
		control.DisabledReason = reason
		return control
	}

	control.invoke = func(c context.Context) error {
		return d.params.OnClick(c, item, ctx)
	}
	return control
}

// Modal projects the action's confirmation dialog from the current view
// state, or nil when the dialog is closed or the action has none.
func (d *Definition[T]) Modal(c context.Context, ctx *Context) *Modal {
	if d.params.Modal == nil {
		return nil
	}
	return d.params.Modal(c, ctx)
}
