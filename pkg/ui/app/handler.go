package app

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/overlay"
)

// Handler executes the synchronous portion of commands and records
// their outputs: pending messages, overlay pushes, an overlay pop
// count, and a sticky quit flag. Async actions are returned to the
// caller untouched; the headless runtime runs them inline while the
// async runtime hands them to an AsyncHandler.
type Handler[M any] struct {
	pending []M
	pushes  []overlay.Overlay[M]
	pops    int
	quit    bool
}

// Apply runs cmd's synchronous actions in order. Callbacks are invoked
// immediately; a false second return adds nothing. Async actions are
// returned for the caller to schedule.
func (h *Handler[M]) Apply(cmd Command[M]) (futures []Future[M], fallibles []FallibleFuture[M]) {
	for _, a := range cmd.actions {
		switch a.kind {
		case actionMessage:
			h.pending = append(h.pending, a.msg)
		case actionQuit:
			h.quit = true
		case actionCallback:
			if m, ok := a.callback(); ok {
				h.pending = append(h.pending, m)
			}
		case actionAsync:
			futures = append(futures, a.future)
		case actionAsyncFallible:
			fallibles = append(fallibles, a.fallible)
		case actionPushOverlay:
			h.pushes = append(h.pushes, a.overlay)
		case actionPopOverlay:
			h.pops++
		}
	}
	return futures, fallibles
}

// TakePending drains and returns the accumulated messages in order.
func (h *Handler[M]) TakePending() []M {
	out := h.pending
	h.pending = nil
	return out
}

// TakePushes drains and returns the overlays to push in order.
func (h *Handler[M]) TakePushes() []overlay.Overlay[M] {
	out := h.pushes
	h.pushes = nil
	return out
}

// TakePops drains and returns the number of overlay pops requested.
func (h *Handler[M]) TakePops() int {
	n := h.pops
	h.pops = 0
	return n
}

// ShouldQuit reports whether any applied command requested exit. The
// flag is sticky; it survives Take* drains until Reset.
func (h *Handler[M]) ShouldQuit() bool {
	return h.quit
}

// Reset clears all recorded outputs including the quit flag.
func (h *Handler[M]) Reset() {
	h.pending = nil
	h.pushes = nil
	h.pops = 0
	h.quit = false
}
