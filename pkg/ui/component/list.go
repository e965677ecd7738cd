package component

import (
	"fmt"

	"github.com/ryanoneill/envision-sub004/pkg/ui/annotation"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

// List is a scrollable selection list. Enter emits the selected item
// as output.
type List[T any] struct {
	id       string
	items    []T
	render   func(T) string
	selected int
	offset   int
	focused  bool
}

// NewList creates a list annotated with id; render formats each item
// for display.
func NewList[T any](id string, render func(T) string) *List[T] {
	return &List[T]{id: id, render: render}
}

// SetItems replaces the items, clamping the selection.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Items returns the current items.
func (l *List[T]) Items() []T {
	return l.items
}

// Selected returns the selected item.
func (l *List[T]) Selected() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	return l.items[l.selected], true
}

// SelectedIndex returns the selection index, -1 when empty.
func (l *List[T]) SelectedIndex() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.selected
}

func (l *List[T]) IsFocused() bool   { return l.focused }
func (l *List[T]) SetFocused(f bool) { l.focused = f }

// Update moves the selection. Enter emits the selected item.
func (l *List[T]) Update(key terminal.KeyEvent) (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	switch key.Key {
	case terminal.KeyUp:
		if l.selected > 0 {
			l.selected--
		}
	case terminal.KeyDown:
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case terminal.KeyHome:
		l.selected = 0
	case terminal.KeyEnd:
		l.selected = len(l.items) - 1
	case terminal.KeyEnter:
		return l.items[l.selected], true
	}
	return zero, false
}

// View draws the visible window of items, keeping the selection in
// view and highlighting it.
func (l *List[T]) View(f *backend.Frame, area backend.Rect, th *theme.Theme) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+area.Height {
		l.offset = l.selected - area.Height + 1
	}

	annotation.Open(area, annotation.Annotation{
		ID:      l.id,
		Type:    annotation.WidgetList,
		Value:   fmt.Sprintf("%d/%d", l.selected, len(l.items)),
		Focused: l.focused,
	})
	defer annotation.Close()

	for row := 0; row < area.Height; row++ {
		i := l.offset + row
		if i >= len(l.items) {
			break
		}
		style := th.TextPrimary
		if i == l.selected {
			style = th.Selection
		}
		label := l.render(l.items[i])
		f.SetString(area.X, area.Y+row, label, style)

		annotation.Record(backend.NewRect(area.X, area.Y+row, area.Width, 1), annotation.Annotation{
			ID:       fmt.Sprintf("%s[%d]", l.id, i),
			Type:     annotation.WidgetListItem,
			Label:    label,
			Selected: i == l.selected,
		})
	}
}

var (
	_ Focusable = (*List[string])(nil)
)
