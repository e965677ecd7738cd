// Package app implements the update loop: commands describe side
// effects returned from Update, handlers execute them, and runtimes
// drive the event / message / render cycle against a backend.
package app

import (
	"context"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/overlay"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// Future is an asynchronous unit of work producing an optional
// message. Returning false means no message.
type Future[M any] func(ctx context.Context) (M, bool)

// FallibleFuture additionally reports failure. A non-nil error is
// routed to the runtime's error channel; the message is ignored when
// err != nil.
type FallibleFuture[M any] func(ctx context.Context) (M, bool, error)

type actionKind int

const (
	actionMessage actionKind = iota
	actionQuit
	actionCallback
	actionAsync
	actionAsyncFallible
	actionPushOverlay
	actionPopOverlay
)

type action[M any] struct {
	kind     actionKind
	msg      M
	callback func() (M, bool)
	future   Future[M]
	fallible FallibleFuture[M]
	overlay  overlay.Overlay[M]
}

// Command describes side effects for the handler to execute. Commands
// are values; combinators return new commands and never mutate their
// receivers.
type Command[M any] struct {
	actions []action[M]
}

// None is the empty command.
func None[M any]() Command[M] {
	return Command[M]{}
}

// Message dispatches a single message back into the update loop.
func Message[M any](msg M) Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionMessage, msg: msg}}}
}

// Batch dispatches messages in order. An empty batch equals None.
func Batch[M any](msgs ...M) Command[M] {
	if len(msgs) == 0 {
		return None[M]()
	}
	actions := make([]action[M], len(msgs))
	for i, m := range msgs {
		actions[i] = action[M]{kind: actionMessage, msg: m}
	}
	return Command[M]{actions: actions}
}

// Quit asks the runtime to exit after the current pass.
func Quit[M any]() Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionQuit}}}
}

// Perform runs f synchronously when the command is handled; a false
// second return adds no message.
func Perform[M any](f func() (M, bool)) Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionCallback, callback: f}}}
}

// PerformAsync schedules f on the runtime's task pool.
func PerformAsync[M any](f Future[M]) Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionAsync, future: f}}}
}

// PerformAsyncFallible schedules f; errors go to the error channel.
func PerformAsyncFallible[M any](f FallibleFuture[M]) Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionAsyncFallible, fallible: f}}}
}

// PushOverlay places o on the overlay stack at the end of the current
// message pass.
func PushOverlay[M any](o overlay.Overlay[M]) Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionPushOverlay, overlay: o}}}
}

// PopOverlay removes the topmost overlay at the end of the current
// message pass.
func PopOverlay[M any]() Command[M] {
	return Command[M]{actions: []action[M]{{kind: actionPopOverlay}}}
}

// IsNone reports whether the command carries no actions.
func (c Command[M]) IsNone() bool {
	return len(c.actions) == 0
}

// And concatenates other's actions after c's.
func (c Command[M]) And(other Command[M]) Command[M] {
	if other.IsNone() {
		return c
	}
	if c.IsNone() {
		return other
	}
	merged := make([]action[M], 0, len(c.actions)+len(other.actions))
	merged = append(merged, c.actions...)
	merged = append(merged, other.actions...)
	return Command[M]{actions: merged}
}

// Combine concatenates commands left to right.
func Combine[M any](cmds ...Command[M]) Command[M] {
	var out Command[M]
	for _, c := range cmds {
		out = out.And(c)
	}
	return out
}

// Clone copies the command's reproducible actions. Message, Quit and
// PopOverlay actions are copied; PushOverlay keeps the same overlay
// reference; Perform and async actions are silently dropped since
// their payloads cannot be duplicated.
func (c Command[M]) Clone() Command[M] {
	var kept []action[M]
	for _, a := range c.actions {
		switch a.kind {
		case actionMessage, actionQuit, actionPushOverlay, actionPopOverlay:
			kept = append(kept, a)
		}
	}
	return Command[M]{actions: kept}
}

// MapCommand transforms a Command[A] into a Command[B] by applying f
// to every produced message, including those from callbacks and async
// futures. Pushed overlays are wrapped so their actions are translated
// too.
func MapCommand[A, B any](c Command[A], f func(A) B) Command[B] {
	actions := make([]action[B], 0, len(c.actions))
	for _, a := range c.actions {
		switch a.kind {
		case actionMessage:
			actions = append(actions, action[B]{kind: actionMessage, msg: f(a.msg)})
		case actionQuit:
			actions = append(actions, action[B]{kind: actionQuit})
		case actionCallback:
			inner := a.callback
			actions = append(actions, action[B]{kind: actionCallback, callback: func() (B, bool) {
				m, ok := inner()
				if !ok {
					var zero B
					return zero, false
				}
				return f(m), true
			}})
		case actionAsync:
			inner := a.future
			actions = append(actions, action[B]{kind: actionAsync, future: func(ctx context.Context) (B, bool) {
				m, ok := inner(ctx)
				if !ok {
					var zero B
					return zero, false
				}
				return f(m), true
			}})
		case actionAsyncFallible:
			inner := a.fallible
			actions = append(actions, action[B]{kind: actionAsyncFallible, fallible: func(ctx context.Context) (B, bool, error) {
				m, ok, err := inner(ctx)
				if err != nil || !ok {
					var zero B
					return zero, false, err
				}
				return f(m), true, nil
			}})
		case actionPushOverlay:
			actions = append(actions, action[B]{
				kind:    actionPushOverlay,
				overlay: mappedOverlay[A, B]{inner: a.overlay, f: f},
			})
		case actionPopOverlay:
			actions = append(actions, action[B]{kind: actionPopOverlay})
		}
	}
	return Command[B]{actions: actions}
}

// mappedOverlay adapts an Overlay[A] into an Overlay[B] by translating
// the messages its actions carry.
type mappedOverlay[A, B any] struct {
	inner overlay.Overlay[A]
	f     func(A) B
}

func (m mappedOverlay[A, B]) HandleEvent(ev terminal.Event) overlay.Action[B] {
	act := m.inner.HandleEvent(ev)
	out := overlay.Action[B]{Kind: act.Kind}
	if act.HasMessage() {
		out.Msg = m.f(act.Msg)
	}
	return out
}

func (m mappedOverlay[A, B]) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	m.inner.View(f, area, th)
}
