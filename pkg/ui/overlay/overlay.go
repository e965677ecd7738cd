// Package overlay provides modal layers drawn over the main view.
// Overlays form a stack: events go to the topmost layer first, while
// rendering runs bottom-up so later pushes draw over earlier ones.
package overlay

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// Overlay is a modal layer parameterized by the app's message type.
type Overlay[M any] interface {
	// HandleEvent reacts to an event. Return Propagate to pass the
	// event to the next layer down (or the app when none remains).
	HandleEvent(ev terminal.Event) Action[M]

	// View draws the overlay into the given area.
	View(f *backend.Frame, area backend.Rect, th *theme.Theme)
}

// ActionKind discriminates the outcomes of Overlay.HandleEvent.
type ActionKind int

const (
	// ActionPropagate passes the event to the next layer down.
	ActionPropagate ActionKind = iota
	// ActionConsumed stops propagation without producing a message.
	ActionConsumed
	// ActionMessage stops propagation and emits a message to the app.
	ActionMessage
	// ActionDismiss removes the overlay that returned it.
	ActionDismiss
	// ActionDismissWithMessage removes the overlay and emits a message.
	ActionDismissWithMessage
)

// Action is the outcome of an overlay handling an event.
type Action[M any] struct {
	Kind ActionKind
	Msg  M
}

// Propagate passes the event down the stack.
func Propagate[M any]() Action[M] {
	return Action[M]{Kind: ActionPropagate}
}

// Consumed swallows the event.
func Consumed[M any]() Action[M] {
	return Action[M]{Kind: ActionConsumed}
}

// Message swallows the event and emits msg to the app.
func Message[M any](msg M) Action[M] {
	return Action[M]{Kind: ActionMessage, Msg: msg}
}

// Dismiss removes the overlay from the stack.
func Dismiss[M any]() Action[M] {
	return Action[M]{Kind: ActionDismiss}
}

// DismissWithMessage removes the overlay and emits msg to the app.
func DismissWithMessage[M any](msg M) Action[M] {
	return Action[M]{Kind: ActionDismissWithMessage, Msg: msg}
}

// HasMessage reports whether the action carries a message.
func (a Action[M]) HasMessage() bool {
	return a.Kind == ActionMessage || a.Kind == ActionDismissWithMessage
}

// Dismisses reports whether the action removes its overlay.
func (a Action[M]) Dismisses() bool {
	return a.Kind == ActionDismiss || a.Kind == ActionDismissWithMessage
}
