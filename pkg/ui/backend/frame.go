package backend

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Frame is the immediate-mode draw surface handed to views.
//
// It batches cell writes per call and forwards them to the backend, so
// a view never touches the backend directly. One frame is produced by
// one goroutine at a time.
type Frame struct {
	backend Backend
	width   int
	height  int
}

// NewFrame wraps a backend for one render pass.
func NewFrame(b Backend) *Frame {
	w, h := b.Size()
	return &Frame{backend: b, width: w, height: h}
}

// Size returns the frame dimensions.
func (f *Frame) Size() (w, h int) {
	return f.width, f.height
}

// Area returns the full frame rect.
func (f *Frame) Area() Rect {
	return Rect{Width: f.width, Height: f.height}
}

// SetCell writes a single cell.
func (f *Frame) SetCell(x, y int, c Cell) {
	f.backend.Draw([]PositionedCell{{X: x, Y: y, Cell: c}})
}

// SetString writes a string starting at (x, y), clipped to the frame.
// The string is split into grapheme clusters so combining marks stay in
// one cell; wide clusters occupy two columns.
func (f *Frame) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= f.height {
		return 0
	}
	cells := make([]PositionedCell, 0, len(s))
	col := x
	state := -1
	var cluster string
	rest := s
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			w = 1
		}
		if col+w > f.width {
			break
		}
		if col >= 0 {
			cells = append(cells, PositionedCell{X: col, Y: y, Cell: Cell{Symbol: cluster, Style: style}})
			if w == 2 {
				cells = append(cells, PositionedCell{X: col + 1, Y: y, Cell: Cell{Symbol: "", Style: style}})
			}
		}
		col += w
	}
	if len(cells) > 0 {
		f.backend.Draw(cells)
	}
	return col - x
}

// Fill fills a rect with a rune and style.
func (f *Frame) Fill(r Rect, ch rune, style Style) {
	clipped := r.Intersection(f.Area())
	if clipped.Area() == 0 {
		return
	}
	cells := make([]PositionedCell, 0, clipped.Area())
	cell := Cell{Symbol: string(ch), Style: style}
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			cells = append(cells, PositionedCell{X: x, Y: y, Cell: cell})
		}
	}
	f.backend.Draw(cells)
}

// ClearRect resets a rect to the default cell.
func (f *Frame) ClearRect(r Rect) {
	f.Fill(r, ' ', DefaultStyle())
}

// DrawBox draws a border around a rect using box-drawing characters.
func (f *Frame) DrawBox(r Rect, style Style) {
	f.drawBorder(r, style, '┌', '┐', '└', '┘')
}

// DrawRoundedBox draws a border with rounded corners.
func (f *Frame) DrawRoundedBox(r Rect, style Style) {
	f.drawBorder(r, style, '╭', '╮', '╰', '╯')
}

func (f *Frame) drawBorder(r Rect, style Style, tl, tr, bl, br rune) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	cells := make([]PositionedCell, 0, 2*r.Width+2*r.Height)
	put := func(x, y int, ch rune) {
		cells = append(cells, PositionedCell{X: x, Y: y, Cell: Cell{Symbol: string(ch), Style: style}})
	}

	put(r.X, r.Y, tl)
	put(r.X+r.Width-1, r.Y, tr)
	put(r.X, r.Y+r.Height-1, bl)
	put(r.X+r.Width-1, r.Y+r.Height-1, br)
	for x := r.X + 1; x < r.X+r.Width-1; x++ {
		put(x, r.Y, '─')
		put(x, r.Y+r.Height-1, '─')
	}
	for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
		put(r.X, y, '│')
		put(r.X+r.Width-1, y, '│')
	}
	f.backend.Draw(cells)
}

// SetCursor positions and shows the cursor.
func (f *Frame) SetCursor(x, y int) {
	f.backend.SetCursorPosition(x, y)
	f.backend.ShowCursor()
}

// HideCursor hides the cursor.
func (f *Frame) HideCursor() {
	f.backend.HideCursor()
}
