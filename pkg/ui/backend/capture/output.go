package capture

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
)

// Position is a grid coordinate returned by text queries.
type Position struct {
	X, Y int
}

// ToString renders the current buffer as text: one line per row,
// trailing spaces trimmed, rows joined by newlines.
func (b *Backend) ToString() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return renderPlain(b.width, b.height, b.cells)
}

// String implements fmt.Stringer.
func (b *Backend) String() string {
	return b.ToString()
}

// ToANSI renders the current buffer with SGR escapes. Runs of equal
// style share one escape; a reset terminates the stream.
func (b *Backend) ToANSI() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return renderANSI(b.width, b.height, b.cells)
}

// ContainsText reports whether s appears on any single row.
func (b *Backend) ContainsText(s string) bool {
	return len(b.FindText(s)) > 0
}

// FindText returns every non-overlapping line-local match of s.
// Search is per-row and does not wrap lines.
func (b *Backend) FindText(s string) []Position {
	if s == "" {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Position
	for y := 0; y < b.height; y++ {
		row, cols := rowString(b.width, b.cells[y*b.width:(y+1)*b.width])
		from := 0
		for {
			i := strings.Index(row[from:], s)
			if i < 0 {
				break
			}
			off := from + i
			out = append(out, Position{X: columnAt(cols, off), Y: y})
			from = off + len(s)
		}
	}
	return out
}

// rowString joins a row's symbols and returns the byte offset at which
// each column starts. Continuation cells contribute no bytes.
func rowString(width int, cells []backend.Cell) (string, []int) {
	var sb strings.Builder
	cols := make([]int, width)
	for x := 0; x < width; x++ {
		cols[x] = sb.Len()
		sb.WriteString(cells[x].Symbol)
	}
	return sb.String(), cols
}

func columnAt(cols []int, byteOff int) int {
	col := 0
	for x, off := range cols {
		if off > byteOff {
			break
		}
		col = x
	}
	return col
}

func renderPlain(width, height int, cells []backend.Cell) string {
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			sb.WriteString(cells[y*width+x].Symbol)
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(rows, "\n")
}

func renderANSI(width, height int, cells []backend.Cell) string {
	var sb strings.Builder
	def := backend.DefaultStyle()
	for y := 0; y < height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := cells[y*width : (y+1)*width]
		end := visibleRowEnd(row)
		current := def
		for x := 0; x < end; x++ {
			cell := row[x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Style != current {
				sb.WriteString(styleToANSI(cell.Style))
				current = cell.Style
			}
			sb.WriteString(cell.Symbol)
		}
		if current != def {
			sb.WriteString("\x1b[0m")
		}
	}
	sb.WriteString("\x1b[0m")
	return sb.String()
}

// visibleRowEnd trims trailing default cells the way renderPlain trims
// trailing spaces.
func visibleRowEnd(row []backend.Cell) int {
	end := len(row)
	for end > 0 && row[end-1].IsDefault() {
		end--
	}
	return end
}

// styleToANSI reconstructs one SGR sequence for a style. The sequence
// starts from a reset so runs never inherit stale attributes.
func styleToANSI(s backend.Style) string {
	parts := []string{"0"}

	attrs := s.Attributes()
	if attrs&backend.AttrBold != 0 {
		parts = append(parts, "1")
	}
	if attrs&backend.AttrDim != 0 {
		parts = append(parts, "2")
	}
	if attrs&backend.AttrItalic != 0 {
		parts = append(parts, "3")
	}
	if attrs&backend.AttrUnderline != 0 {
		parts = append(parts, "4")
	}
	if attrs&backend.AttrBlink != 0 {
		parts = append(parts, "5")
	}
	if attrs&backend.AttrReverse != 0 {
		parts = append(parts, "7")
	}
	if attrs&backend.AttrStrikeThrough != 0 {
		parts = append(parts, "9")
	}

	parts = append(parts, colorParams(s.FG(), true)...)
	parts = append(parts, colorParams(s.BG(), false)...)

	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func colorParams(c backend.Color, fg bool) []string {
	switch {
	case c == backend.ColorDefault:
		if fg {
			return []string{"39"}
		}
		return []string{"49"}
	case c.IsRGB():
		r, g, b := c.RGB()
		lead := "48"
		if fg {
			lead = "38"
		}
		return []string{lead, "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	case c < 8:
		if fg {
			return []string{strconv.Itoa(30 + int(c))}
		}
		return []string{strconv.Itoa(40 + int(c))}
	case c < 16:
		if fg {
			return []string{strconv.Itoa(90 + int(c) - 8)}
		}
		return []string{strconv.Itoa(100 + int(c) - 8)}
	default:
		lead := "48"
		if fg {
			lead = "38"
		}
		return []string{lead, "5", strconv.Itoa(int(c))}
	}
}

// jsonBuffer is the stable snapshot schema. Cells are row-major and
// default cells are omitted.
type jsonBuffer struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Cursor CursorState `json:"cursor"`
	Cells  []jsonCell  `json:"cells"`
}

type jsonCell struct {
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Symbol string   `json:"symbol"`
	FG     string   `json:"fg,omitempty"`
	BG     string   `json:"bg,omitempty"`
	Mods   []string `json:"mods,omitempty"`
}

func (b *Backend) jsonValue() jsonBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := jsonBuffer{
		Width:  b.width,
		Height: b.height,
		Cursor: CursorState{X: b.cursorX, Y: b.cursorY, Visible: b.cursorVisible},
		Cells:  []jsonCell{},
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.cells[b.index(x, y)]
			if cell.IsDefault() {
				continue
			}
			jc := jsonCell{
				X:      x,
				Y:      y,
				Symbol: cell.Symbol,
				Mods:   cell.Style.Attributes().Names(),
			}
			if fg := cell.Style.FG(); fg != backend.ColorDefault {
				jc.FG = fg.String()
			}
			if bg := cell.Style.BG(); bg != backend.ColorDefault {
				jc.BG = bg.String()
			}
			out.Cells = append(out.Cells, jc)
		}
	}
	return out
}

// ToJSON renders the buffer as compact JSON.
func (b *Backend) ToJSON() (string, error) {
	data, err := json.Marshal(b.jsonValue())
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// ToJSONPretty renders the buffer as indented JSON.
func (b *Backend) ToJSONPretty() (string, error) {
	data, err := json.MarshalIndent(b.jsonValue(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// FromJSON reconstructs a capture backend from a JSON snapshot.
func FromJSON(data string) (*Backend, error) {
	var jb jsonBuffer
	if err := json.Unmarshal([]byte(data), &jb); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	b := New(jb.Width, jb.Height)
	b.cursorX = jb.Cursor.X
	b.cursorY = jb.Cursor.Y
	b.cursorVisible = jb.Cursor.Visible
	for _, jc := range jb.Cells {
		if jc.X < 0 || jc.X >= jb.Width || jc.Y < 0 || jc.Y >= jb.Height {
			continue
		}
		style := backend.NewStyle(
			backend.ParseColor(jc.FG),
			backend.ParseColor(jc.BG),
			backend.ParseAttrs(jc.Mods),
		)
		b.cells[b.index(jc.X, jc.Y)] = backend.Cell{Symbol: jc.Symbol, Style: style}
	}
	return b, nil
}
