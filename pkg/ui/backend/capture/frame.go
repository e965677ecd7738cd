package capture

import "github.com/ryanoneill/envision-sub004/pkg/ui/backend"

// CursorState is the cursor portion of a frame snapshot.
type CursorState struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Visible bool `json:"visible"`
}

// Frame is an immutable snapshot of the backend at flush time.
type Frame struct {
	Sequence uint64
	Width    int
	Height   int
	Cursor   CursorState
	cells    []backend.Cell
}

// Cell returns the cell at (x, y), or the default cell out of bounds.
func (f Frame) Cell(x, y int) backend.Cell {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return backend.DefaultCell()
	}
	return f.cells[y*f.Width+x]
}

// ToString renders the frame as trimmed newline-separated rows.
func (f Frame) ToString() string {
	return renderPlain(f.Width, f.Height, f.cells)
}

// ToANSI renders the frame with SGR escapes.
func (f Frame) ToANSI() string {
	return renderANSI(f.Width, f.Height, f.cells)
}

// Equal reports whether two frames have identical content and cursor
// state, ignoring sequence numbers.
func (f Frame) Equal(other Frame) bool {
	if f.Width != other.Width || f.Height != other.Height || f.Cursor != other.Cursor {
		return false
	}
	for i := range f.cells {
		if f.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// CellChange records one differing cell between two frames.
type CellChange struct {
	X, Y   int
	Before backend.Cell
	After  backend.Cell
}

// Diff lists cells that differ between f and other, row-major. Frames
// of different dimensions diff as a full change of the newer frame.
func (f Frame) Diff(other Frame) []CellChange {
	var changes []CellChange
	if f.Width != other.Width || f.Height != other.Height {
		for y := 0; y < other.Height; y++ {
			for x := 0; x < other.Width; x++ {
				changes = append(changes, CellChange{X: x, Y: y, After: other.Cell(x, y)})
			}
		}
		return changes
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			before, after := f.Cell(x, y), other.Cell(x, y)
			if before != after {
				changes = append(changes, CellChange{X: x, Y: y, Before: before, After: after})
			}
		}
	}
	return changes
}
