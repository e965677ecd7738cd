package component

import (
	"github.com/mattn/go-runewidth"

	"github.com/ryanoneill/envision-sub004/pkg/ui/annotation"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// TextInputOutput is emitted when the user submits the field.
type TextInputOutput struct {
	Value string
}

// TextInput is a single-line editable field.
type TextInput struct {
	id          string
	placeholder string
	value       []rune
	cursor      int
	focused     bool
}

// NewTextInput creates an empty field annotated with id.
func NewTextInput(id, placeholder string) *TextInput {
	return &TextInput{id: id, placeholder: placeholder}
}

// Value returns the current contents.
func (t *TextInput) Value() string {
	return string(t.value)
}

// SetValue replaces the contents and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.value = []rune(s)
	t.cursor = len(t.value)
}

// Cursor returns the rune index of the cursor.
func (t *TextInput) Cursor() int {
	return t.cursor
}

func (t *TextInput) IsFocused() bool   { return t.focused }
func (t *TextInput) SetFocused(f bool) { t.focused = f }

// Update edits the field. Enter emits the current value as output.
func (t *TextInput) Update(key terminal.KeyEvent) (TextInputOutput, bool) {
	switch {
	case key.Key == terminal.KeyEnter:
		return TextInputOutput{Value: t.Value()}, true
	case key.Key == terminal.KeyBackspace:
		if t.cursor > 0 {
			t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
			t.cursor--
		}
	case key.Key == terminal.KeyDelete:
		if t.cursor < len(t.value) {
			t.value = append(t.value[:t.cursor], t.value[t.cursor+1:]...)
		}
	case key.Key == terminal.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Key == terminal.KeyRight:
		if t.cursor < len(t.value) {
			t.cursor++
		}
	case key.Key == terminal.KeyHome:
		t.cursor = 0
	case key.Key == terminal.KeyEnd:
		t.cursor = len(t.value)
	case key.Key == terminal.KeyRune && !key.Ctrl && !key.Alt:
		t.value = append(t.value[:t.cursor], append([]rune{key.Rune}, t.value[t.cursor:]...)...)
		t.cursor++
	}
	return TextInputOutput{}, false
}

// View draws the field on the first row of area and positions the
// hardware cursor when focused.
func (t *TextInput) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	style := th.TextPrimary
	if len(t.value) == 0 && t.placeholder != "" {
		f.SetString(area.X, area.Y, t.placeholder, th.Placeholder)
	} else {
		f.SetString(area.X, area.Y, string(t.value), style)
	}
	if t.focused {
		col := area.X + runewidth.StringWidth(string(t.value[:t.cursor]))
		f.SetCursor(col, area.Y)
	}

	annotation.Record(backend.NewRect(area.X, area.Y, area.Width, 1), annotation.Annotation{
		ID:      t.id,
		Type:    annotation.WidgetTextInput,
		Label:   t.placeholder,
		Value:   t.Value(),
		Focused: t.focused,
	})
}

var (
	_ Component[terminal.KeyEvent, TextInputOutput] = (*TextInput)(nil)
	_ Focusable                                     = (*TextInput)(nil)
)
