package terminal

// EventQueue holds a sequence of simulated input events.
//
// Tests pre-load a queue with keystrokes and let the application's event
// loop consume them in insertion order. The queue is not safe for
// concurrent use; the async runtime bridges it through a channel instead.
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// WithEvents creates a queue pre-loaded with events.
func WithEvents(events ...Event) *EventQueue {
	q := NewEventQueue()
	q.events = append(q.events, events...)
	return q
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// IsEmpty returns true if no events are queued.
func (q *EventQueue) IsEmpty() bool {
	return len(q.events) == 0
}

// Clear drops all queued events.
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}

// Push appends an event to the end of the queue.
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// PushFront inserts an event at the head of the queue so it is
// consumed next.
func (q *EventQueue) PushFront(ev Event) {
	q.events = append([]Event{ev}, q.events...)
}

// Pop removes and returns the next event.
func (q *EventQueue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// Peek returns the next event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	return q.events[0], true
}

// Drain removes and returns all queued events.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Rune queues a plain character keypress.
func (q *EventQueue) Rune(r rune) {
	q.Push(KeyRuneEvent(r))
}

// TypeString queues one keypress per rune of s.
func (q *EventQueue) TypeString(s string) {
	for _, r := range s {
		q.Rune(r)
	}
}

// Key queues a special-key press.
func (q *EventQueue) Key(k Key) {
	q.Push(SpecialEvent(k))
}

// Ctrl queues a Ctrl+char keypress.
func (q *EventQueue) Ctrl(r rune) {
	q.Push(CtrlEvent(r))
}

// Alt queues an Alt+char keypress.
func (q *EventQueue) Alt(r rune) {
	q.Push(AltEvent(r))
}

// Resize queues a terminal resize.
func (q *EventQueue) Resize(w, h int) {
	q.Push(ResizeEvent{Width: w, Height: h})
}

// Paste queues a bracketed paste.
func (q *EventQueue) Paste(text string) {
	q.Push(PasteEvent{Text: text})
}

// Click queues a left-button mouse press at (x, y).
func (q *EventQueue) Click(x, y int) {
	q.Push(ClickEvent(x, y))
}

// FocusGained queues a focus-gained event.
func (q *EventQueue) FocusGained() {
	q.Push(FocusEvent{Gained: true})
}

// FocusLost queues a focus-lost event.
func (q *EventQueue) FocusLost() {
	q.Push(FocusEvent{Gained: false})
}
