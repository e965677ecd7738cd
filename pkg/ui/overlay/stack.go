package overlay

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// Stack holds overlays in push order. The last pushed overlay is
// topmost: it receives events first and renders last.
//
// The zero value is an empty, ready-to-use stack. Stacks are not safe
// for concurrent use; the runtime owns them on its loop goroutine.
type Stack[M any] struct {
	layers []Overlay[M]
}

// NewStack returns an empty overlay stack.
func NewStack[M any]() *Stack[M] {
	return &Stack[M]{}
}

// Push places o on top of the stack.
func (s *Stack[M]) Push(o Overlay[M]) {
	s.layers = append(s.layers, o)
}

// Pop removes and returns the topmost overlay. Returns false on an
// empty stack.
func (s *Stack[M]) Pop() (Overlay[M], bool) {
	if len(s.layers) == 0 {
		var zero Overlay[M]
		return zero, false
	}
	top := s.layers[len(s.layers)-1]
	s.layers[len(s.layers)-1] = nil
	s.layers = s.layers[:len(s.layers)-1]
	return top, true
}

// Top returns the topmost overlay without removing it.
func (s *Stack[M]) Top() (Overlay[M], bool) {
	if len(s.layers) == 0 {
		var zero Overlay[M]
		return zero, false
	}
	return s.layers[len(s.layers)-1], true
}

// Clear removes all overlays.
func (s *Stack[M]) Clear() {
	for i := range s.layers {
		s.layers[i] = nil
	}
	s.layers = s.layers[:0]
}

// Len reports the number of overlays on the stack.
func (s *Stack[M]) Len() int {
	return len(s.layers)
}

// IsEmpty reports whether the stack has no overlays.
func (s *Stack[M]) IsEmpty() bool {
	return len(s.layers) == 0
}

// HandleEvent dispatches ev top-down. The first overlay returning
// other than Propagate decides the outcome; a dismissing action
// removes that overlay, which need not be the top. When every layer
// propagates (or the stack is empty) the returned action is Propagate
// and the caller delivers the event to the app.
func (s *Stack[M]) HandleEvent(ev terminal.Event) Action[M] {
	for i := len(s.layers) - 1; i >= 0; i-- {
		act := s.layers[i].HandleEvent(ev)
		if act.Kind == ActionPropagate {
			continue
		}
		if act.Dismisses() {
			s.removeAt(i)
		}
		return act
	}
	return Propagate[M]()
}

// Render draws all overlays bottom-up into the given area, so later
// pushes draw over earlier ones.
func (s *Stack[M]) Render(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	for _, o := range s.layers {
		o.View(f, area, th)
	}
}

func (s *Stack[M]) removeAt(i int) {
	copy(s.layers[i:], s.layers[i+1:])
	s.layers[len(s.layers)-1] = nil
	s.layers = s.layers[:len(s.layers)-1]
}
