// Package terminal provides terminal input event types and the simulated
// event queue used for headless runs.
package terminal

// Event represents a terminal input event.
type Event interface {
	eventMarker()
}

// KeyEventKind distinguishes press, repeat, and release events.
// Most terminals only report presses; the other kinds exist for
// backends that enable enhanced keyboard protocols.
type KeyEventKind int

const (
	KeyPress KeyEventKind = iota
	KeyRepeat
	KeyRelease
)

// KeyEvent represents a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Kind  KeyEventKind
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) eventMarker() {}

// ResizeEvent indicates the terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent represents a mouse input event.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) eventMarker() {}

// PasteEvent represents bracketed paste content.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// FocusEvent indicates the terminal gained or lost focus.
type FocusEvent struct {
	Gained bool
}

func (FocusEvent) eventMarker() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character
	KeyEnter
	KeyBackspace
	KeyTab
	KeyBacktab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyRuneEvent returns a plain character keypress.
func KeyRuneEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// CtrlEvent returns a Ctrl+char keypress.
func CtrlEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Ctrl: true}
}

// AltEvent returns an Alt+char keypress.
func AltEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Alt: true}
}

// SpecialEvent returns a keypress for a non-character key.
func SpecialEvent(k Key) KeyEvent {
	return KeyEvent{Key: k}
}

// ClickEvent returns a left-button press at (x, y).
func ClickEvent(x, y int) MouseEvent {
	return MouseEvent{X: x, Y: y, Button: MouseLeft, Action: MousePress}
}
