// Package capture provides an in-memory backend that records every
// rendering operation for inspection, snapshotting, and headless tests.
package capture

import (
	"context"
	"errors"
	"sync"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// ErrQueueFull is returned by PostEvent when the injection buffer is full.
var ErrQueueFull = errors.New("capture: event queue full")

const eventBuffer = 256

// Backend is a rendering backend that captures frames instead of
// writing to a terminal. It also acts as an EventSource fed by the
// Inject helpers, so a whole application can run against it headlessly.
type Backend struct {
	mu sync.Mutex

	cells  []backend.Cell
	width  int
	height int

	cursorX       int
	cursorY       int
	cursorVisible bool

	frameCount uint64
	history    []Frame
	historyCap int

	events chan terminal.Event
}

// New creates a capture backend with a zeroed w×h buffer and no frame
// history.
func New(w, h int) *Backend {
	return WithHistory(w, h, 0)
}

// WithHistory creates a capture backend that retains up to cap flushed
// frames. The oldest frame is discarded once the bound is reached.
func WithHistory(w, h, cap int) *Backend {
	b := &Backend{
		width:      w,
		height:     h,
		historyCap: cap,
		events:     make(chan terminal.Event, eventBuffer),
	}
	b.cells = newGrid(w, h)
	return b
}

func newGrid(w, h int) []backend.Cell {
	cells := make([]backend.Cell, w*h)
	def := backend.DefaultCell()
	for i := range cells {
		cells[i] = def
	}
	return cells
}

func (b *Backend) index(x, y int) int {
	return y*b.width + x
}

// Draw copies cells into the current buffer. Out-of-bounds entries are
// silently discarded. No flush implied.
func (b *Backend) Draw(cells []backend.PositionedCell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, pc := range cells {
		if pc.X < 0 || pc.X >= b.width || pc.Y < 0 || pc.Y >= b.height {
			continue
		}
		b.cells[b.index(pc.X, pc.Y)] = pc.Cell
	}
}

// Cell returns the cell at (x, y), or the default cell out of bounds.
func (b *Backend) Cell(x, y int) backend.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return backend.DefaultCell()
	}
	return b.cells[b.index(x, y)]
}

// SetCursorPosition moves the cursor, clamped to the grid.
func (b *Backend) SetCursorPosition(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = clamp(x, 0, b.width-1)
	b.cursorY = clamp(y, 0, b.height-1)
}

// CursorPosition reports the cursor location.
func (b *Backend) CursorPosition() (x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

// ShowCursor shows the cursor.
func (b *Backend) ShowCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = true
}

// CursorVisible reports cursor visibility.
func (b *Backend) CursorVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorVisible
}

// Size returns the grid dimensions.
func (b *Backend) Size() (w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// WindowSize equals Size for the in-memory grid.
func (b *Backend) WindowSize() (w, h int) {
	return b.Size()
}

// Resize recreates the buffer at the new dimensions. Existing cell
// content is dropped; history and the frame counter are preserved.
func (b *Backend) Resize(w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width = w
	b.height = h
	b.cells = newGrid(w, h)
	b.cursorX = clamp(b.cursorX, 0, w-1)
	b.cursorY = clamp(b.cursorY, 0, h-1)
}

// Clear resets every cell to the default cell.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	def := backend.DefaultCell()
	for i := range b.cells {
		b.cells[i] = def
	}
}

// ClearRegion resets a subset of cells relative to the cursor.
// AfterCursor and UntilNewline include the cursor cell; BeforeCursor
// excludes it.
func (b *Backend) ClearRegion(ct backend.ClearType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end := 0, len(b.cells)
	switch ct {
	case backend.ClearAll:
	case backend.ClearAfterCursor:
		start = b.index(b.cursorX, b.cursorY)
	case backend.ClearBeforeCursor:
		end = b.index(b.cursorX, b.cursorY)
	case backend.ClearCurrentLine:
		start = b.index(0, b.cursorY)
		end = start + b.width
	case backend.ClearUntilNewline:
		start = b.index(b.cursorX, b.cursorY)
		end = b.index(0, b.cursorY) + b.width
	}
	if end > len(b.cells) {
		end = len(b.cells)
	}
	def := backend.DefaultCell()
	for i := start; i < end; i++ {
		b.cells[i] = def
	}
}

// Flush finalises the current buffer as a frame, pushing a snapshot to
// the history ring when one is configured. Two consecutive flushes
// produce two frames with identical content and increasing sequence
// numbers.
func (b *Backend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frameCount++
	if b.historyCap > 0 {
		b.history = append(b.history, b.snapshotLocked())
		if len(b.history) > b.historyCap {
			b.history = b.history[1:]
		}
	}
	return nil
}

// FrameCount returns how many frames have been flushed.
func (b *Backend) FrameCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameCount
}

// Snapshot captures the current buffer as a frame without flushing.
// Its sequence number is that of the most recent flush.
func (b *Backend) Snapshot() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Backend) snapshotLocked() Frame {
	cells := make([]backend.Cell, len(b.cells))
	copy(cells, b.cells)
	return Frame{
		Sequence: b.frameCount,
		Width:    b.width,
		Height:   b.height,
		Cursor:   CursorState{X: b.cursorX, Y: b.cursorY, Visible: b.cursorVisible},
		cells:    cells,
	}
}

// History returns the retained frames, oldest first.
func (b *Backend) History() []Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Frame, len(b.history))
	copy(out, b.history)
	return out
}

// LastFrame returns the most recently flushed frame from history.
func (b *Backend) LastFrame() (Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.history) == 0 {
		return Frame{}, false
	}
	return b.history[len(b.history)-1], true
}

// ClearHistory drops all retained frames.
func (b *Backend) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}

// PostEvent injects an event for the next NextEvent call.
func (b *Backend) PostEvent(ev terminal.Event) error {
	select {
	case b.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// NextEvent blocks until an injected event is available or the context
// is cancelled.
func (b *Backend) NextEvent(ctx context.Context) (terminal.Event, error) {
	select {
	case ev := <-b.events:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryNextEvent returns a queued event without blocking.
func (b *Backend) TryNextEvent() (terminal.Event, bool) {
	select {
	case ev := <-b.events:
		return ev, true
	default:
		return nil, false
	}
}

// InjectKey injects a key event.
func (b *Backend) InjectKey(key terminal.Key, r rune) error {
	return b.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectRune injects a regular character keypress.
func (b *Backend) InjectRune(r rune) error {
	return b.InjectKey(terminal.KeyRune, r)
}

// TypeString injects one keypress per rune of s.
func (b *Backend) TypeString(s string) error {
	for _, r := range s {
		if err := b.InjectRune(r); err != nil {
			return err
		}
	}
	return nil
}

// InjectResize resizes the grid and injects the matching event.
func (b *Backend) InjectResize(w, h int) error {
	b.Resize(w, h)
	return b.PostEvent(terminal.ResizeEvent{Width: w, Height: h})
}

// InjectPaste injects a bracketed paste event.
func (b *Backend) InjectPaste(text string) error {
	return b.PostEvent(terminal.PasteEvent{Text: text})
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	_ backend.Backend     = (*Backend)(nil)
	_ backend.EventSource = (*Backend)(nil)
)
