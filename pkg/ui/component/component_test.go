package component

import (
	"strings"
	"testing"

	"github.com/ryanoneill/envision-sub004/pkg/ui/annotation"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend"
	"github.com/ryanoneill/envision-sub004/pkg/ui/backend/capture"
	"github.com/ryanoneill/envision-sub004/pkg/ui/terminal"
	"github.com/ryanoneill/envision-sub004/pkg/ui/theme"
)

func key(k terminal.Key) terminal.KeyEvent {
	return terminal.KeyEvent{Key: k}
}

func runeKey(r rune) terminal.KeyEvent {
	return terminal.KeyEvent{Key: terminal.KeyRune, Rune: r}
}

func TestTextInputEditing(t *testing.T) {
	in := NewTextInput("name", "your name")

	for _, r := range "hello" {
		in.Update(runeKey(r))
	}
	if in.Value() != "hello" {
		t.Fatalf("value = %q", in.Value())
	}

	in.Update(key(terminal.KeyBackspace))
	in.Update(key(terminal.KeyHome))
	in.Update(runeKey('H'))
	in.Update(key(terminal.KeyDelete))
	if in.Value() != "Hell" {
		t.Errorf("value = %q", in.Value())
	}

	in.Update(key(terminal.KeyEnd))
	in.Update(runeKey('o'))
	out, submitted := in.Update(key(terminal.KeyEnter))
	if !submitted || out.Value != "Hello" {
		t.Errorf("submit = %v %q", submitted, out.Value)
	}
}

func TestTextInputCursorMovement(t *testing.T) {
	in := NewTextInput("f", "")
	in.SetValue("ab")
	in.Update(key(terminal.KeyLeft))
	in.Update(key(terminal.KeyLeft))
	in.Update(key(terminal.KeyLeft)) // clamped at 0
	if in.Cursor() != 0 {
		t.Errorf("cursor = %d", in.Cursor())
	}
	in.Update(runeKey('x'))
	if in.Value() != "xab" || in.Cursor() != 1 {
		t.Errorf("value = %q cursor = %d", in.Value(), in.Cursor())
	}
}

func TestTextInputViewAndAnnotation(t *testing.T) {
	b := capture.New(20, 2)
	f := backend.NewFrame(b)
	in := NewTextInput("name", "your name")
	Focus(in)
	in.SetValue("abc")

	reg := annotation.With(func() {
		in.View(f, backend.NewRect(0, 0, 20, 1), theme.PlainTheme())
	})

	if !b.ContainsText("abc") {
		t.Error("value not drawn")
	}
	x, y := b.CursorPosition()
	if x != 3 || y != 0 {
		t.Errorf("cursor = (%d,%d)", x, y)
	}

	region, ok := reg.GetByID("name")
	if !ok || region.Annotation.Value != "abc" || !region.Annotation.Focused {
		t.Errorf("annotation = %+v ok=%v", region.Annotation, ok)
	}
}

func TestTextInputPlaceholder(t *testing.T) {
	b := capture.New(20, 1)
	f := backend.NewFrame(b)
	in := NewTextInput("q", "search...")
	in.View(f, backend.NewRect(0, 0, 20, 1), theme.PlainTheme())
	if !b.ContainsText("search...") {
		t.Errorf("placeholder missing:\n%s", b.ToString())
	}
}

func TestListNavigationAndChoice(t *testing.T) {
	l := NewList("menu", func(s string) string { return s })
	l.SetItems([]string{"one", "two", "three"})

	l.Update(key(terminal.KeyDown))
	l.Update(key(terminal.KeyDown))
	l.Update(key(terminal.KeyDown)) // clamped at end
	if l.SelectedIndex() != 2 {
		t.Fatalf("selected = %d", l.SelectedIndex())
	}
	l.Update(key(terminal.KeyUp))
	choice, ok := l.Update(key(terminal.KeyEnter))
	if !ok || choice != "two" {
		t.Errorf("choice = %q ok=%v", choice, ok)
	}
	l.Update(key(terminal.KeyHome))
	if l.SelectedIndex() != 0 {
		t.Errorf("selected = %d after Home", l.SelectedIndex())
	}
}

func TestListScrollKeepsSelectionVisible(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}
	l := NewList("menu", func(s string) string { return s })
	l.SetItems(items)
	l.Update(key(terminal.KeyEnd))

	b := capture.New(10, 3)
	f := backend.NewFrame(b)
	l.View(f, backend.NewRect(0, 0, 10, 3), theme.PlainTheme())

	if !b.ContainsText("f") {
		t.Errorf("selection scrolled out of view:\n%s", b.ToString())
	}
	if b.ContainsText("a") {
		t.Errorf("window did not scroll:\n%s", b.ToString())
	}
}

func TestListAnnotations(t *testing.T) {
	l := NewList("menu", func(s string) string { return strings.ToUpper(s) })
	l.SetItems([]string{"one", "two"})
	l.Update(key(terminal.KeyDown))

	b := capture.New(10, 4)
	f := backend.NewFrame(b)
	reg := annotation.With(func() {
		l.View(f, backend.NewRect(0, 0, 10, 4), theme.PlainTheme())
	})

	items := reg.FindByType(annotation.WidgetListItem)
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if items[0].Annotation.Selected || !items[1].Annotation.Selected {
		t.Error("selection flag on wrong item")
	}

	list, ok := reg.GetByID("menu")
	if !ok || list.Annotation.Value != "1/2" {
		t.Errorf("list annotation = %+v", list.Annotation)
	}
	parent, ok := reg.Parent(items[0])
	if !ok || parent.Annotation.ID != "menu" {
		t.Error("items not nested under list")
	}
}

func TestSpinnerTicksAndToggles(t *testing.T) {
	s := NewSpinner("busy")
	first := s.Frame()
	s.Tick()
	if s.Frame() == first {
		t.Error("frame did not advance")
	}
	for i := 0; i < len(spinnerFrames)-1; i++ {
		s.Tick()
	}
	if s.Frame() != first {
		t.Error("frames did not wrap")
	}

	b := capture.New(4, 1)
	f := backend.NewFrame(b)
	Hide(s)
	s.View(f, backend.NewRect(0, 0, 4, 1), theme.PlainTheme())
	if b.ToString() != "" {
		t.Errorf("hidden spinner drew: %q", b.ToString())
	}
	Toggle(s)
	if !s.IsVisible() {
		t.Error("toggle did not show")
	}
}

func TestProgressClampsAndDraws(t *testing.T) {
	p := NewProgress("load")
	p.Set(1.5)
	if p.Ratio() != 1 {
		t.Errorf("ratio = %v", p.Ratio())
	}
	p.Set(-0.5)
	if p.Ratio() != 0 {
		t.Errorf("ratio = %v", p.Ratio())
	}

	p.Set(0.5)
	b := capture.New(10, 1)
	f := backend.NewFrame(b)
	reg := annotation.With(func() {
		p.View(f, backend.NewRect(0, 0, 10, 1), theme.PlainTheme())
	})

	if got := b.ToString(); got != "█████░░░░░" {
		t.Errorf("bar = %q", got)
	}
	region, _ := reg.GetByID("load")
	if region.Annotation.Value != "50%" {
		t.Errorf("value = %q", region.Annotation.Value)
	}
}

func TestStatusBarAlignment(t *testing.T) {
	sb := NewStatusBar("status")
	sb.Left = "ready"
	sb.Right = "1:1"

	b := capture.New(12, 1)
	f := backend.NewFrame(b)
	sb.View(f, backend.NewRect(0, 0, 12, 1), theme.PlainTheme())

	if got := b.ToString(); got != "ready    1:1" {
		t.Errorf("bar = %q", got)
	}
}
