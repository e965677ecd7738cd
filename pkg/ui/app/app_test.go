package app

import (
	"fmt"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/overlay"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

type counterMsg int

const (
	incMsg counterMsg = iota
	decMsg
	quitMsg
	askMsg
	confirmedMsg
)

// counterApp is the shared fixture: '+' increments, 'q' quits, '?'
// opens a confirm dialog that quits on accept.
type counterApp struct {
	count   int
	history []string
}

func (a *counterApp) Init() Command[counterMsg] {
	return None[counterMsg]()
}

func (a *counterApp) Update(msg counterMsg) Command[counterMsg] {
	switch msg {
	case incMsg:
		a.count++
		a.history = append(a.history, fmt.Sprintf("increment to %d", a.count))
	case decMsg:
		a.count--
	case quitMsg:
		return Quit[counterMsg]()
	case askMsg:
		return PushOverlay[counterMsg](overlay.NewConfirm("Quit", "Really quit?", quitMsg, confirmedMsg))
	case confirmedMsg:
		a.history = append(a.history, "stayed")
	}
	return None[counterMsg]()
}

func (a *counterApp) HandleEvent(ev terminal.Event) (counterMsg, bool) {
	key, ok := ev.(terminal.KeyEvent)
	if !ok {
		return 0, false
	}
	switch key.Rune {
	case '+':
		return incMsg, true
	case '-':
		return decMsg, true
	case 'q':
		return quitMsg, true
	case '?':
		return askMsg, true
	}
	return 0, false
}

func (a *counterApp) View(f *backend.Frame, th *theme.Theme) {
	f.SetString(0, 0, fmt.Sprintf("count: %d", a.count), th.TextPrimary)
}
