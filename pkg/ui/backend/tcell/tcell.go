// Package tcell adapts a real terminal to the Backend and EventSource
// interfaces using github.com/gdamore/tcell/v2. It is the only backend
// that can surface I/O errors.
package tcell

import (
	"context"
	"fmt"
	"strings"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
)

// Backend drives a live terminal through tcell.
type Backend struct {
	screen tcellv2.Screen

	cursorX       int
	cursorY       int
	cursorVisible bool

	events chan terminal.Event
	done   chan struct{}

	// Bracketed paste state
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a backend on the process terminal.
func New() (*Backend, error) {
	screen, err := tcellv2.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing tcell screen (simulation screens in
// tests).
func NewWithScreen(screen tcellv2.Screen) *Backend {
	return &Backend{
		screen: screen,
		events: make(chan terminal.Event, 64),
		done:   make(chan struct{}),
	}
}

// Init enters raw mode, enables mouse and bracketed paste, and starts
// the event pump.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	go b.pump()
	return nil
}

// Fini restores the terminal and stops the event pump.
func (b *Backend) Fini() {
	close(b.done)
	b.screen.Fini()
}

// Draw copies cells to the tcell screen.
func (b *Backend) Draw(cells []backend.PositionedCell) {
	for _, pc := range cells {
		if pc.Cell.IsContinuation() {
			continue
		}
		runes := []rune(pc.Cell.Symbol)
		if len(runes) == 0 {
			continue
		}
		b.screen.SetContent(pc.X, pc.Y, runes[0], runes[1:], convertStyle(pc.Cell.Style))
	}
}

// SetCursorPosition moves the cursor. tcell shows the cursor when the
// position is applied, so the location takes effect on the next flush.
func (b *Backend) SetCursorPosition(x, y int) {
	b.cursorX, b.cursorY = x, y
	if b.cursorVisible {
		b.screen.ShowCursor(x, y)
	}
}

// CursorPosition reports the last position set.
func (b *Backend) CursorPosition() (x, y int) {
	return b.cursorX, b.cursorY
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.cursorVisible = false
	b.screen.HideCursor()
}

// ShowCursor shows the cursor at its current position.
func (b *Backend) ShowCursor() {
	b.cursorVisible = true
	b.screen.ShowCursor(b.cursorX, b.cursorY)
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (w, h int) {
	return b.screen.Size()
}

// WindowSize equals Size; tcell reports cells, not pixels.
func (b *Backend) WindowSize() (w, h int) {
	return b.screen.Size()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// ClearRegion resets a region by overwriting cells; tcell has no
// region-clear primitive.
func (b *Backend) ClearRegion(ct backend.ClearType) {
	w, h := b.screen.Size()
	inRegion := func(x, y int) bool {
		idx := y*w + x
		cur := b.cursorY*w + b.cursorX
		switch ct {
		case backend.ClearAll:
			return true
		case backend.ClearAfterCursor:
			return idx >= cur
		case backend.ClearBeforeCursor:
			return idx < cur
		case backend.ClearCurrentLine:
			return y == b.cursorY
		case backend.ClearUntilNewline:
			return y == b.cursorY && x >= b.cursorX
		}
		return false
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if inRegion(x, y) {
				b.screen.SetContent(x, y, ' ', nil, tcellv2.StyleDefault)
			}
		}
	}
}

// Flush synchronizes the internal buffer to the terminal.
func (b *Backend) Flush() error {
	b.screen.Show()
	return nil
}

// Beep emits an audible bell.
func (b *Backend) Beep() {
	b.screen.Beep()
}

// Sync forces a full repaint on the next flush.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// NextEvent returns the next terminal event, honoring cancellation.
func (b *Backend) NextEvent(ctx context.Context) (terminal.Event, error) {
	select {
	case ev, ok := <-b.events:
		if !ok {
			return nil, context.Canceled
		}
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// pump translates tcell events until Fini.
func (b *Backend) pump() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			close(b.events)
			return
		}
		converted, ok := b.convertPolled(ev)
		if !ok {
			continue
		}
		select {
		case b.events <- converted:
		case <-b.done:
			return
		}
	}
}

// convertPolled handles the bracketed-paste state machine and converts
// everything else directly.
func (b *Backend) convertPolled(ev tcellv2.Event) (terminal.Event, bool) {
	switch e := ev.(type) {
	case *tcellv2.EventPaste:
		if e.Start() {
			b.inPaste = true
			b.pasteBuffer.Reset()
			return nil, false
		}
		b.inPaste = false
		text := b.pasteBuffer.String()
		b.pasteBuffer.Reset()
		if text == "" {
			return nil, false
		}
		return terminal.PasteEvent{Text: text}, true

	case *tcellv2.EventKey:
		if b.inPaste {
			switch e.Key() {
			case tcellv2.KeyRune:
				b.pasteBuffer.WriteRune(e.Rune())
			case tcellv2.KeyEnter:
				b.pasteBuffer.WriteRune('\n')
			case tcellv2.KeyTab:
				b.pasteBuffer.WriteRune('\t')
			}
			return nil, false
		}
		return convertKeyEvent(e), true

	case *tcellv2.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}, true

	case *tcellv2.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		return terminal.MouseEvent{
			X:      x,
			Y:      y,
			Button: convertMouseButton(e.Buttons()),
			Action: convertMouseAction(e.Buttons()),
			Alt:    mods&tcellv2.ModAlt != 0,
			Ctrl:   mods&tcellv2.ModCtrl != 0,
			Shift:  mods&tcellv2.ModShift != 0,
		}, true

	case *tcellv2.EventFocus:
		return terminal.FocusEvent{Gained: e.Focused}, true
	}
	return nil, false
}

func convertKeyEvent(e *tcellv2.EventKey) terminal.KeyEvent {
	key := convertKey(e.Key())
	r := e.Rune()
	ctrl := e.Modifiers()&tcellv2.ModCtrl != 0

	// tcell folds Ctrl+letter into dedicated key codes; unfold them so
	// callers match on Rune+Ctrl. Tab and Enter share codes with Ctrl+I
	// and Ctrl+M and stay as-is.
	if e.Key() >= tcellv2.KeyCtrlA && e.Key() <= tcellv2.KeyCtrlZ &&
		e.Key() != tcellv2.KeyTab && e.Key() != tcellv2.KeyEnter {
		key = terminal.KeyRune
		r = rune('a' + int(e.Key()) - int(tcellv2.KeyCtrlA))
		ctrl = true
	}

	return terminal.KeyEvent{
		Key:   key,
		Rune:  r,
		Alt:   e.Modifiers()&tcellv2.ModAlt != 0,
		Ctrl:  ctrl,
		Shift: e.Modifiers()&tcellv2.ModShift != 0,
	}
}

func convertStyle(s backend.Style) tcellv2.Style {
	fg, bg, attrs := s.Decompose()
	style := tcellv2.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrStrikeThrough != 0 {
		style = style.StrikeThrough(true)
	}
	return style
}

func convertColor(c backend.Color) tcellv2.Color {
	if c == backend.ColorDefault {
		return tcellv2.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcellv2.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcellv2.PaletteColor(int(c))
}

func convertKey(k tcellv2.Key) terminal.Key {
	switch k {
	case tcellv2.KeyRune:
		return terminal.KeyRune
	case tcellv2.KeyUp:
		return terminal.KeyUp
	case tcellv2.KeyDown:
		return terminal.KeyDown
	case tcellv2.KeyRight:
		return terminal.KeyRight
	case tcellv2.KeyLeft:
		return terminal.KeyLeft
	case tcellv2.KeyPgUp:
		return terminal.KeyPageUp
	case tcellv2.KeyPgDn:
		return terminal.KeyPageDown
	case tcellv2.KeyHome:
		return terminal.KeyHome
	case tcellv2.KeyEnd:
		return terminal.KeyEnd
	case tcellv2.KeyInsert:
		return terminal.KeyInsert
	case tcellv2.KeyDelete:
		return terminal.KeyDelete
	case tcellv2.KeyBackspace, tcellv2.KeyBackspace2:
		return terminal.KeyBackspace
	case tcellv2.KeyTab:
		return terminal.KeyTab
	case tcellv2.KeyBacktab:
		return terminal.KeyBacktab
	case tcellv2.KeyEnter:
		return terminal.KeyEnter
	case tcellv2.KeyEscape:
		return terminal.KeyEscape
	case tcellv2.KeyF1:
		return terminal.KeyF1
	case tcellv2.KeyF2:
		return terminal.KeyF2
	case tcellv2.KeyF3:
		return terminal.KeyF3
	case tcellv2.KeyF4:
		return terminal.KeyF4
	case tcellv2.KeyF5:
		return terminal.KeyF5
	case tcellv2.KeyF6:
		return terminal.KeyF6
	case tcellv2.KeyF7:
		return terminal.KeyF7
	case tcellv2.KeyF8:
		return terminal.KeyF8
	case tcellv2.KeyF9:
		return terminal.KeyF9
	case tcellv2.KeyF10:
		return terminal.KeyF10
	case tcellv2.KeyF11:
		return terminal.KeyF11
	case tcellv2.KeyF12:
		return terminal.KeyF12
	default:
		return terminal.KeyNone
	}
}

func convertMouseButton(buttons tcellv2.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcellv2.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcellv2.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcellv2.Button1 != 0:
		return terminal.MouseLeft
	case buttons&tcellv2.Button2 != 0:
		return terminal.MouseMiddle
	case buttons&tcellv2.Button3 != 0:
		return terminal.MouseRight
	default:
		return terminal.MouseNone
	}
}

func convertMouseAction(buttons tcellv2.ButtonMask) terminal.MouseAction {
	if buttons == tcellv2.ButtonNone {
		return terminal.MouseRelease
	}
	return terminal.MousePress
}

var (
	_ backend.Backend     = (*Backend)(nil)
	_ backend.EventSource = (*Backend)(nil)
)
