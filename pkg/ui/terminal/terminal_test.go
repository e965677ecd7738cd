package terminal

import "testing"

func TestKeyConstantsUnique(t *testing.T) {
	keys := []Key{
		KeyNone, KeyRune, KeyEnter, KeyBackspace, KeyTab, KeyBacktab,
		KeyEscape, KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyDelete, KeyInsert,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}

	seen := make(map[Key]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key constant: %d", k)
		}
		seen[k] = true
	}
}

func TestEventInterface(t *testing.T) {
	var _ Event = KeyEvent{}
	var _ Event = ResizeEvent{}
	var _ Event = MouseEvent{}
	var _ Event = PasteEvent{}
	var _ Event = FocusEvent{}
}

func TestConstructors(t *testing.T) {
	if ev := KeyRuneEvent('a'); ev.Key != KeyRune || ev.Rune != 'a' || ev.Ctrl {
		t.Errorf("KeyRuneEvent: %+v", ev)
	}
	if ev := CtrlEvent('c'); !ev.Ctrl || ev.Rune != 'c' {
		t.Errorf("CtrlEvent: %+v", ev)
	}
	if ev := AltEvent('x'); !ev.Alt || ev.Rune != 'x' {
		t.Errorf("AltEvent: %+v", ev)
	}
	if ev := SpecialEvent(KeyEnter); ev.Key != KeyEnter || ev.Rune != 0 {
		t.Errorf("SpecialEvent: %+v", ev)
	}
	if ev := ClickEvent(3, 7); ev.X != 3 || ev.Y != 7 || ev.Button != MouseLeft || ev.Action != MousePress {
		t.Errorf("ClickEvent: %+v", ev)
	}
}

func TestQueueOrdering(t *testing.T) {
	q := NewEventQueue()
	q.TypeString("hi")
	q.Key(KeyEnter)

	if q.Len() != 3 {
		t.Fatalf("expected 3 events, got %d", q.Len())
	}

	ev, ok := q.Pop()
	if !ok || ev.(KeyEvent).Rune != 'h' {
		t.Errorf("first event: %+v", ev)
	}
	ev, _ = q.Pop()
	if ev.(KeyEvent).Rune != 'i' {
		t.Errorf("second event: %+v", ev)
	}
	ev, _ = q.Pop()
	if ev.(KeyEvent).Key != KeyEnter {
		t.Errorf("third event: %+v", ev)
	}
	if _, ok := q.Pop(); ok {
		t.Error("expected empty queue")
	}
}

func TestQueuePushFront(t *testing.T) {
	q := WithEvents(KeyRuneEvent('b'))
	q.PushFront(KeyRuneEvent('a'))

	ev, _ := q.Pop()
	if ev.(KeyEvent).Rune != 'a' {
		t.Errorf("expected 'a' first, got %+v", ev)
	}
}

func TestQueuePeekAndDrain(t *testing.T) {
	q := NewEventQueue()
	q.Resize(80, 24)
	q.Paste("clip")

	ev, ok := q.Peek()
	if !ok {
		t.Fatal("peek on non-empty queue failed")
	}
	if _, isResize := ev.(ResizeEvent); !isResize {
		t.Errorf("expected ResizeEvent, got %T", ev)
	}
	if q.Len() != 2 {
		t.Error("peek must not consume")
	}

	events := q.Drain()
	if len(events) != 2 || !q.IsEmpty() {
		t.Errorf("drain left %d queued, returned %d", q.Len(), len(events))
	}
	if p, ok := events[1].(PasteEvent); !ok || p.Text != "clip" {
		t.Errorf("expected paste event, got %+v", events[1])
	}
}
