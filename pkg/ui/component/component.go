// Package component defines the widget contract and a small set of
// bundled widgets. A component owns its state, consumes its own
// message type, and reports to its parent through a declared output
// type; composites translate child outputs into their own messages at
// wiring time.
package component

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// Component is the widget contract. Update applies one message and
// optionally emits an output for the parent; View draws the current
// state into area.
type Component[M, O any] interface {
	Update(msg M) (O, bool)
	View(f *backend.Frame, area backend.Rect, th *theme.Theme)
}

// Focusable is the capability of holding input focus. Capabilities
// are orthogonal; a component may implement any combination.
type Focusable interface {
	IsFocused() bool
	SetFocused(focused bool)
}

// Focus gives f input focus.
func Focus(f Focusable) { f.SetFocused(true) }

// Blur removes input focus from f.
func Blur(f Focusable) { f.SetFocused(false) }

// Toggleable is the capability of being shown and hidden.
type Toggleable interface {
	IsVisible() bool
	SetVisible(visible bool)
}

// Show makes t visible.
func Show(t Toggleable) { t.SetVisible(true) }

// Hide makes t invisible.
func Hide(t Toggleable) { t.SetVisible(false) }

// Toggle flips t's visibility.
func Toggle(t Toggleable) { t.SetVisible(!t.IsVisible()) }
