package component

// FocusManager owns an ordered list of focusable ids and tracks which
// one, if any, holds focus. Wrapping is cyclic: FocusNext from the
// last id lands on the first, FocusPrev from the first on the last.
type FocusManager[ID comparable] struct {
	order   []ID
	current ID
	focused bool
}

// NewFocusManager creates a manager over ids in tab order. Nothing is
// focused initially.
func NewFocusManager[ID comparable](ids ...ID) *FocusManager[ID] {
	return &FocusManager[ID]{order: ids}
}

// Add appends id to the tab order if not already present.
func (m *FocusManager[ID]) Add(id ID) {
	if m.indexOf(id) >= 0 {
		return
	}
	m.order = append(m.order, id)
}

// Remove deletes id from the tab order, blurring it if focused.
func (m *FocusManager[ID]) Remove(id ID) {
	i := m.indexOf(id)
	if i < 0 {
		return
	}
	if m.focused && m.current == id {
		m.Blur()
	}
	m.order = append(m.order[:i], m.order[i+1:]...)
}

// Len reports the number of managed ids.
func (m *FocusManager[ID]) Len() int {
	return len(m.order)
}

// Focus moves focus to id. Unknown ids are a no-op and preserve the
// current focus.
func (m *FocusManager[ID]) Focus(id ID) {
	if m.indexOf(id) < 0 {
		return
	}
	m.current = id
	m.focused = true
}

// FocusNext moves focus forward, wrapping at the end. From an
// unfocused state it focuses the first id.
func (m *FocusManager[ID]) FocusNext() {
	if len(m.order) == 0 {
		return
	}
	if !m.focused {
		m.FocusFirst()
		return
	}
	i := m.indexOf(m.current)
	m.current = m.order[(i+1)%len(m.order)]
}

// FocusPrev moves focus backward, wrapping at the start. From an
// unfocused state it focuses the last id.
func (m *FocusManager[ID]) FocusPrev() {
	if len(m.order) == 0 {
		return
	}
	if !m.focused {
		m.FocusLast()
		return
	}
	i := m.indexOf(m.current)
	m.current = m.order[(i-1+len(m.order))%len(m.order)]
}

// FocusFirst focuses the first id in tab order.
func (m *FocusManager[ID]) FocusFirst() {
	if len(m.order) == 0 {
		return
	}
	m.current = m.order[0]
	m.focused = true
}

// FocusLast focuses the last id in tab order.
func (m *FocusManager[ID]) FocusLast() {
	if len(m.order) == 0 {
		return
	}
	m.current = m.order[len(m.order)-1]
	m.focused = true
}

// Blur clears the focus.
func (m *FocusManager[ID]) Blur() {
	var zero ID
	m.current = zero
	m.focused = false
}

// Focused returns the currently focused id.
func (m *FocusManager[ID]) Focused() (ID, bool) {
	return m.current, m.focused
}

// IsFocused reports whether id currently holds focus.
func (m *FocusManager[ID]) IsFocused(id ID) bool {
	return m.focused && m.current == id
}

func (m *FocusManager[ID]) indexOf(id ID) int {
	for i, v := range m.order {
		if v == id {
			return i
		}
	}
	return -1
}
