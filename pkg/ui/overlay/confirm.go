package overlay

import (
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// Confirm is a yes/no modal dialog. Enter or 'y' dismisses with the
// accept message, Escape or 'n' with the reject message. Everything
// else is consumed so keystrokes never leak to the app underneath.
type Confirm[M any] struct {
	Title   string
	Prompt  string
	Accept M
	Reject M
	yes    bool
}

// NewConfirm builds a dialog that emits accept or reject on dismissal.
func NewConfirm[M any](title, prompt string, accept, reject M) *Confirm[M] {
	return &Confirm[M]{
		Title:  title,
		Prompt: prompt,
		Accept: accept,
		Reject: reject,
		yes:    true,
	}
}

func (c *Confirm[M]) HandleEvent(ev terminal.Event) Action[M] {
	key, ok := ev.(terminal.KeyEvent)
	if !ok {
		return Consumed[M]()
	}
	switch {
	case key.Key == terminal.KeyEnter:
		if c.yes {
			return DismissWithMessage(c.Accept)
		}
		return DismissWithMessage(c.Reject)
	case key.Key == terminal.KeyEscape:
		return DismissWithMessage(c.Reject)
	case key.Rune == 'y' || key.Rune == 'Y':
		return DismissWithMessage(c.Accept)
	case key.Rune == 'n' || key.Rune == 'N':
		return DismissWithMessage(c.Reject)
	case key.Key == terminal.KeyLeft || key.Key == terminal.KeyRight ||
		key.Key == terminal.KeyTab:
		c.yes = !c.yes
		return Consumed[M]()
	}
	return Consumed[M]()
}

func (c *Confirm[M]) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	w := len(c.Prompt) + 6
	if tw := len(c.Title) + 6; tw > w {
		w = tw
	}
	if w < 24 {
		w = 24
	}
	if w > area.Width {
		w = area.Width
	}
	box := area.Centered(w, 5)

	f.ClearRect(box)
	f.DrawRoundedBox(box, th.BorderFocus)
	if c.Title != "" {
		f.SetString(box.X+2, box.Y, " "+c.Title+" ", th.Accent)
	}
	f.SetString(box.X+2, box.Y+1, c.Prompt, th.TextPrimary)

	yesStyle, noStyle := th.TextSecondary, th.TextSecondary
	if c.yes {
		yesStyle = th.Selection.Bold(true)
	} else {
		noStyle = th.Selection.Bold(true)
	}
	f.SetString(box.X+2, box.Y+3, "[ Yes ]", yesStyle)
	f.SetString(box.X+11, box.Y+3, "[ No ]", noStyle)
}

var _ Overlay[int] = (*Confirm[int])(nil)
