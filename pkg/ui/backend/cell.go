package backend

// Cell is one grid position's payload: a symbol (possibly a multi-rune
// grapheme cluster) plus styling.
//
// A wide grapheme occupies two columns; the column to its right holds a
// continuation cell whose Symbol is empty.
type Cell struct {
	Symbol string
	Style  Style
}

// DefaultCell returns the cell buffers are reset to: a space with the
// default style.
func DefaultCell() Cell {
	return Cell{Symbol: " ", Style: DefaultStyle()}
}

// NewCell builds a cell from a symbol and style.
func NewCell(symbol string, style Style) Cell {
	return Cell{Symbol: symbol, Style: style}
}

// IsDefault reports whether the cell equals the default cell.
func (c Cell) IsDefault() bool {
	return c == DefaultCell()
}

// IsContinuation reports whether the cell is the right half of a wide
// grapheme.
func (c Cell) IsContinuation() bool {
	return c.Symbol == ""
}

// Rect is a positioned rectangle in grid coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Contains returns true if the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if the two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Intersection returns the overlapping area of two rects.
func (r Rect) Intersection(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x || y2 <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(0, r.Width-left-right),
		Height: max(0, r.Height-top-bottom),
	}
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Centered returns a w×h rect centered inside r, clamped to r.
func (r Rect) Centered(w, h int) Rect {
	w = min(w, r.Width)
	h = min(h, r.Height)
	return Rect{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
