// Package backend defines the rendering backend interface for the TUI.
// This abstraction allows swapping between tcell (real terminals) and
// the capture backend (headless testing), enabling golden-frame tests.
package backend

import (
	"context"

	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// ClearType selects which part of the screen a ClearRegion call resets.
type ClearType int

const (
	ClearAll ClearType = iota
	ClearAfterCursor
	ClearBeforeCursor
	ClearCurrentLine
	ClearUntilNewline
)

// PositionedCell pairs a cell with its grid coordinates for Draw.
type PositionedCell struct {
	X, Y int
	Cell Cell
}

// Backend is the rendering abstraction layer.
//
// Draw and cursor operations never fail logically; out-of-bounds draws
// are dropped. I/O errors surface only from Flush on real-terminal
// adapters.
type Backend interface {
	// Draw copies cells into the current buffer. Out-of-bounds entries
	// are discarded. No flush implied.
	Draw(cells []PositionedCell)

	// SetCursorPosition moves the cursor.
	SetCursorPosition(x, y int)

	// CursorPosition reports the cursor location.
	CursorPosition() (x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// ShowCursor shows the cursor.
	ShowCursor()

	// Size returns the grid dimensions as column/row counts.
	Size() (width, height int)

	// WindowSize returns the window dimensions. For in-memory backends
	// this equals Size.
	WindowSize() (width, height int)

	// Clear resets every cell to the default cell.
	Clear()

	// ClearRegion resets a subset of cells relative to the cursor.
	ClearRegion(ct ClearType)

	// Flush finalises the current buffer as a frame.
	Flush() error
}

// EventSource yields terminal input events. Implementations must honor
// context cancellation so the async runtime can tear down cleanly.
type EventSource interface {
	NextEvent(ctx context.Context) (terminal.Event, error)
}

// RenderTarget is the subset of Backend widgets draw against.
type RenderTarget interface {
	Size() (width, height int)
	Draw(cells []PositionedCell)
}
