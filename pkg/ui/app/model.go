package app

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// App is the application contract the runtimes drive. The value holds
// the state; Update mutates it and describes side effects as a
// Command. All four methods run on the runtime's loop goroutine.
type App[M any] interface {
	// Init returns the command to execute before the first tick.
	Init() Command[M]

	// Update applies msg to the state and returns follow-up effects.
	Update(msg M) Command[M]

	// HandleEvent translates a terminal event the overlay stack
	// propagated into a message. Return false to ignore the event.
	HandleEvent(ev terminal.Event) (M, bool)

	// View draws the current state. Overlays render afterwards, over
	// whatever View produced.
	View(f *backend.Frame, th *theme.Theme)
}
