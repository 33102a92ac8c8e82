package domain

// noSlot is the cursor value of an empty slot list.
const noSlot = -1

// ManualSlots is a small ring of operator-managed ED working values,
// tracked separately from the session's current ED.
// The cursor is a valid index, or noSlot iff the list is empty.
type ManualSlots struct {
	slots  []Ed
	cursor int
}

// NewManualSlots returns an empty slot list.
func NewManualSlots() *ManualSlots {
	return &ManualSlots{cursor: noSlot}
}

// Len returns the number of slots.
func (m *ManualSlots) Len() int {
	return len(m.slots)
}

// Cursor returns the focused slot index, or -1 when empty.
func (m *ManualSlots) Cursor() int {
	return m.cursor
}

// Slots returns a copy of the slot values in order.
func (m *ManualSlots) Slots() []Ed {
	out := make([]Ed, len(m.slots))
	copy(out, m.slots)
	return out
}

// Curr returns the focused slot's value.
func (m *ManualSlots) Curr() (Ed, bool) {
	if m.cursor == noSlot {
		return Ed{}, false
	}
	return m.slots[m.cursor], true
}

// AddSlot parses text, appends it and focuses the new slot.
// Unparseable text leaves the list unchanged.
func (m *ManualSlots) AddSlot(text string) (Ed, bool) {
	ed, ok := ParseEd(text)
	if !ok {
		return Ed{}, false
	}
	m.slots = append(m.slots, ed)
	m.cursor = len(m.slots) - 1
	return ed, true
}

// IncrementCurr bumps the focused slot and returns its new value.
func (m *ManualSlots) IncrementCurr() (Ed, bool) {
	if m.cursor == noSlot {
		return Ed{}, false
	}
	m.slots[m.cursor].Increment()
	return m.slots[m.cursor], true
}

// DecrementCurr lowers the focused slot (floor 1) and returns its new value.
func (m *ManualSlots) DecrementCurr() (Ed, bool) {
	if m.cursor == noSlot {
		return Ed{}, false
	}
	m.slots[m.cursor].Decrement()
	return m.slots[m.cursor], true
}

// Next moves focus forward, wrapping to the first slot.
func (m *ManualSlots) Next() {
	if len(m.slots) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.slots)
}

// Prev moves focus backward, wrapping to the last slot.
func (m *ManualSlots) Prev() {
	if len(m.slots) == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + len(m.slots)) % len(m.slots)
}

// RemoveCurr drops the focused slot. Focus moves to the previous slot
// (clamped to the first), or to none once the list is empty.
func (m *ManualSlots) RemoveCurr() (Ed, bool) {
	if m.cursor == noSlot {
		return Ed{}, false
	}

	removed := m.slots[m.cursor]
	m.slots = append(m.slots[:m.cursor], m.slots[m.cursor+1:]...)

	switch {
	case len(m.slots) == 0:
		m.cursor = noSlot
	case m.cursor > 0:
		m.cursor--
	}
	return removed, true
}
