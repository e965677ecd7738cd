// Package harness bundles a capture backend, an event queue, an
// annotation registry and assertion helpers into one headless test
// driver for terminal apps.
package harness

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/annotation"
	"github.com/ryanoneill/envision-sub004/pkg/ui/app"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend/capture"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// Harness drives an app headlessly: inject events, step the runtime,
// then assert on the captured screen.
type Harness[M any] struct {
	app     app.App[M]
	backend *capture.Backend
	runtime *app.Runtime[M]
	cfg     app.RuntimeConfig

	// SnapshotDir is where AssertSnapshot stores golden files.
	// Defaults to testdata/snapshots.
	SnapshotDir string
}

// New creates a harness around a at the given screen size.
func New[M any](a app.App[M], width, height int) *Harness[M] {
	return NewWithConfig(a, width, height, app.RuntimeConfig{Theme: theme.PlainTheme()})
}

// NewWithConfig creates a harness with explicit runtime options.
func NewWithConfig[M any](a app.App[M], width, height int, cfg app.RuntimeConfig) *Harness[M] {
	b := capture.WithHistory(width, height, cfg.HistorySize)
	return &Harness[M]{
		app:         a,
		backend:     b,
		runtime:     app.NewRuntime(a, b, cfg),
		cfg:         cfg,
		SnapshotDir: "testdata/snapshots",
	}
}

// Backend exposes the capture backend for direct inspection.
func (h *Harness[M]) Backend() *capture.Backend {
	return h.backend
}

// Events exposes the injection queue.
func (h *Harness[M]) Events() *terminal.EventQueue {
	return h.runtime.Events()
}

// Runtime exposes the underlying headless runtime.
func (h *Harness[M]) Runtime() *app.Runtime[M] {
	return h.runtime
}

// Step processes injected events and renders.
func (h *Harness[M]) Step() error {
	return h.runtime.Step()
}

// Run steps until the app quits or no work remains.
func (h *Harness[M]) Run() error {
	return h.runtime.Run()
}

// Dispatch feeds a message straight into the update loop.
func (h *Harness[M]) Dispatch(msg M) error {
	return h.runtime.Dispatch(msg)
}

// TypeString injects key events for each rune of s.
func (h *Harness[M]) TypeString(s string) {
	h.Events().TypeString(s)
}

// Key injects a special-key press.
func (h *Harness[M]) Key(k terminal.Key) {
	h.Events().Key(k)
}

// Screen returns the current frame as trimmed text.
func (h *Harness[M]) Screen() string {
	return h.backend.ToString()
}

// Annotations re-renders the app's view inside a fresh registry scope
// and returns it for queries.
func (h *Harness[M]) Annotations() *annotation.Registry {
	th := h.cfg.Theme
	if th == nil {
		th = theme.PlainTheme()
	}
	return annotation.With(func() {
		f := backend.NewFrame(h.backend)
		h.app.View(f, th)
		h.runtime.Overlays().Render(f, f.Area(), th)
	})
}
