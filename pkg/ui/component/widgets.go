package component

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/ryanoneill/envision-sub004/pkg/ui/annotation"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is an activity indicator advanced by ticks.
type Spinner struct {
	id      string
	frame   int
	visible bool
}

// NewSpinner creates a visible spinner annotated with id.
func NewSpinner(id string) *Spinner {
	return &Spinner{id: id, visible: true}
}

// Tick advances to the next frame.
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// Frame returns the current frame glyph.
func (s *Spinner) Frame() string {
	return spinnerFrames[s.frame]
}

func (s *Spinner) IsVisible() bool   { return s.visible }
func (s *Spinner) SetVisible(v bool) { s.visible = v }

// View draws the current frame at area's origin.
func (s *Spinner) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	if !s.visible || area.Width <= 0 || area.Height <= 0 {
		return
	}
	f.SetString(area.X, area.Y, s.Frame(), th.Spinner)
	annotation.Record(backend.NewRect(area.X, area.Y, 1, 1), annotation.Annotation{
		ID:   s.id,
		Type: annotation.WidgetSpinner,
	})
}

// Progress is a horizontal progress bar over a 0..1 ratio.
type Progress struct {
	id    string
	ratio float64
}

// NewProgress creates an empty bar annotated with id.
func NewProgress(id string) *Progress {
	return &Progress{id: id}
}

// Set clamps ratio into [0, 1].
func (p *Progress) Set(ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	p.ratio = ratio
}

// Ratio returns the current fill ratio.
func (p *Progress) Ratio() float64 {
	return p.ratio
}

// View draws the bar across the first row of area.
func (p *Progress) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	filled := int(p.ratio * float64(area.Width))
	for x := 0; x < area.Width; x++ {
		ch := '░'
		if x < filled {
			ch = '█'
		}
		f.SetCell(area.X+x, area.Y, backend.NewCell(string(ch), th.Progress))
	}
	annotation.Record(backend.NewRect(area.X, area.Y, area.Width, 1), annotation.Annotation{
		ID:    p.id,
		Type:  annotation.WidgetProgressBar,
		Value: fmt.Sprintf("%d%%", int(p.ratio*100)),
	})
}

// StatusBar renders left- and right-aligned text on one row.
type StatusBar struct {
	id    string
	Left  string
	Right string
}

// NewStatusBar creates a status bar annotated with id.
func NewStatusBar(id string) *StatusBar {
	return &StatusBar{id: id}
}

// View fills the row with the bar style, left text flush left and
// right text flush right.
func (s *StatusBar) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	f.Fill(backend.NewRect(area.X, area.Y, area.Width, 1), ' ', th.StatusBar)
	f.SetString(area.X, area.Y, s.Left, th.StatusBar)
	rw := runewidth.StringWidth(s.Right)
	if rw < area.Width {
		f.SetString(area.X+area.Width-rw, area.Y, s.Right, th.StatusBar)
	}
	annotation.Record(backend.NewRect(area.X, area.Y, area.Width, 1), annotation.Annotation{
		ID:    s.id,
		Type:  annotation.WidgetStatusBar,
		Value: s.Left,
	})
}

var _ Toggleable = (*Spinner)(nil)
