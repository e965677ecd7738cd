// Package dual provides a backend that tees every draw primitive to a
// primary (usually real-terminal) backend and a capture backend, so a
// live session can be inspected or snapshotted after the fact.
package dual

import (
	"errors"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend/capture"
)

// Backend forwards all operations to a primary backend and mirrors
// them into a capture backend. Dimensions follow the primary; the
// capture grid is resized to match on construction.
type Backend struct {
	primary backend.Backend
	capture *capture.Backend
}

// New tees primary into a fresh capture backend sized to match.
func New(primary backend.Backend) *Backend {
	w, h := primary.Size()
	return &Backend{
		primary: primary,
		capture: capture.New(w, h),
	}
}

// NewWithCapture tees primary into an existing capture backend.
func NewWithCapture(primary backend.Backend, cap *capture.Backend) *Backend {
	return &Backend{primary: primary, capture: cap}
}

// Capture returns the mirror backend for inspection.
func (d *Backend) Capture() *capture.Backend {
	return d.capture
}

// Draw forwards cells to both backends.
func (d *Backend) Draw(cells []backend.PositionedCell) {
	d.primary.Draw(cells)
	d.capture.Draw(cells)
}

// SetCursorPosition moves the cursor on both backends.
func (d *Backend) SetCursorPosition(x, y int) {
	d.primary.SetCursorPosition(x, y)
	d.capture.SetCursorPosition(x, y)
}

// CursorPosition reports the primary backend's cursor.
func (d *Backend) CursorPosition() (x, y int) {
	return d.primary.CursorPosition()
}

// HideCursor hides the cursor on both backends.
func (d *Backend) HideCursor() {
	d.primary.HideCursor()
	d.capture.HideCursor()
}

// ShowCursor shows the cursor on both backends.
func (d *Backend) ShowCursor() {
	d.primary.ShowCursor()
	d.capture.ShowCursor()
}

// Size returns the primary backend's dimensions.
func (d *Backend) Size() (w, h int) {
	return d.primary.Size()
}

// WindowSize returns the primary backend's window dimensions.
func (d *Backend) WindowSize() (w, h int) {
	return d.primary.WindowSize()
}

// Clear clears both backends.
func (d *Backend) Clear() {
	d.primary.Clear()
	d.capture.Clear()
}

// ClearRegion clears a region on both backends.
func (d *Backend) ClearRegion(ct backend.ClearType) {
	d.primary.ClearRegion(ct)
	d.capture.ClearRegion(ct)
}

// Flush flushes both backends. Errors are joined so a capture frame is
// still recorded when the primary fails, and vice versa.
func (d *Backend) Flush() error {
	return errors.Join(d.primary.Flush(), d.capture.Flush())
}

// Sync resizes the capture grid to the primary's current size. Call
// after the primary observes a resize.
func (d *Backend) Sync() {
	w, h := d.primary.Size()
	cw, ch := d.capture.Size()
	if w != cw || h != ch {
		d.capture.Resize(w, h)
	}
}

var _ backend.Backend = (*Backend)(nil)
