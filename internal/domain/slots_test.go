package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSlots_Empty(t *testing.T) {
	m := NewManualSlots()

	assert.Equal(t, -1, m.Cursor())
	_, ok := m.Curr()
	assert.False(t, ok)
	_, ok = m.IncrementCurr()
	assert.False(t, ok)
	_, ok = m.DecrementCurr()
	assert.False(t, ok)
	_, ok = m.RemoveCurr()
	assert.False(t, ok)

	m.Next()
	m.Prev()
	assert.Equal(t, -1, m.Cursor())
}

func TestManualSlots_AddSlotFocusesNewSlot(t *testing.T) {
	m := NewManualSlots()

	ed, ok := m.AddSlot("5")
	require.True(t, ok)
	assert.Equal(t, "5", ed.String())
	assert.Equal(t, 0, m.Cursor())

	_, ok = m.AddSlot("9c")
	require.True(t, ok)
	assert.Equal(t, 1, m.Cursor())

	curr, _ := m.Curr()
	assert.Equal(t, "9C", curr.String())
}

func TestManualSlots_AddSlotRejectsGarbage(t *testing.T) {
	m := NewManualSlots()
	m.AddSlot("3")

	_, ok := m.AddSlot("abc")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())
}

func TestManualSlots_PrevWraps(t *testing.T) {
	m := NewManualSlots()
	m.AddSlot("5")
	m.AddSlot("9")

	m.Prev()
	curr, _ := m.Curr()
	assert.Equal(t, "5", curr.String())

	m.Prev()
	curr, _ = m.Curr()
	assert.Equal(t, "9", curr.String())
}

func TestManualSlots_NextWraps(t *testing.T) {
	m := NewManualSlots()
	m.AddSlot("1")
	m.AddSlot("2")
	m.AddSlot("3")

	m.Next()
	assert.Equal(t, 0, m.Cursor())
	m.Next()
	assert.Equal(t, 1, m.Cursor())
}

func TestManualSlots_IncrementDecrementInPlace(t *testing.T) {
	m := NewManualSlots()
	m.AddSlot("4a")
	m.AddSlot("1")

	ed, ok := m.DecrementCurr()
	require.True(t, ok)
	assert.Equal(t, "1", ed.String())

	m.Prev()
	ed, ok = m.IncrementCurr()
	require.True(t, ok)
	assert.Equal(t, "5A", ed.String())

	assert.Equal(t, []Ed{NewEd(5, "A"), NewEd(1, "")}, m.Slots())
}

func TestManualSlots_RemoveCurr(t *testing.T) {
	m := NewManualSlots()
	m.AddSlot("1")
	m.AddSlot("2")
	m.AddSlot("3")

	// Removing the last slot focuses the previous one
	removed, ok := m.RemoveCurr()
	require.True(t, ok)
	assert.Equal(t, "3", removed.String())
	assert.Equal(t, 1, m.Cursor())

	// Removing index 0 clamps to 0
	m.Next()
	assert.Equal(t, 0, m.Cursor())
	m.RemoveCurr()
	assert.Equal(t, 0, m.Cursor())
	curr, _ := m.Curr()
	assert.Equal(t, "2", curr.String())

	m.RemoveCurr()
	assert.Equal(t, -1, m.Cursor())
	assert.Equal(t, 0, m.Len())
}
