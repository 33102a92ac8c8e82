package annotate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/edtag/internal/domain"
	"github.com/mmcdole/edtag/internal/navigator"
	"github.com/mmcdole/edtag/internal/store"
)

// recordingViewer captures viewer calls
type recordingViewer struct {
	shown []string
	steps []domain.Direction
}

func (v *recordingViewer) Show(url string) error {
	v.shown = append(v.shown, url)
	return nil
}

func (v *recordingViewer) Step(dir domain.Direction) error {
	v.steps = append(v.steps, dir)
	return nil
}

func newMachine(t *testing.T, utps ...string) (*Machine, *recordingViewer) {
	t.Helper()
	ctx := context.Background()

	imgs := make([]*domain.Image, len(utps))
	for i, utp := range utps {
		imgs[i] = &domain.Image{Ark: fmt.Sprintf("ark%d", i+1), Year: 1930, UTPCode: utp, ImageIndex: i + 1}
	}
	nav, err := navigator.New(ctx, store.NewMemoryStore(), imgs, nil)
	require.NoError(t, err)

	viewer := &recordingViewer{}
	return NewMachine(ctx, nav, viewer, "{ark}", nil), viewer
}

func eds(m *Machine) []string {
	return m.Navigator().Curr().Eds.Values()
}

func TestMachine_StartsAtOne(t *testing.T) {
	m, _ := newMachine(t, "X")

	assert.Equal(t, ModeNone, m.Mode())
	assert.Equal(t, "1", m.CurrEd().String())
}

func TestMachine_OpenOnlyFromNone(t *testing.T) {
	m, _ := newMachine(t, "X")

	require.True(t, m.Open(ModeCurrentEd))
	assert.False(t, m.Open(ModeFillToEd))
	assert.Equal(t, ModeCurrentEd, m.Mode())

	m.Cancel()
	assert.Equal(t, ModeNone, m.Mode())
	assert.False(t, m.Open(ModeRemoveList))
	assert.False(t, m.Open(ModeNone))
}

func TestMachine_CancelHasNoSideEffects(t *testing.T) {
	m, _ := newMachine(t, "X")

	m.Open(ModeCurrentEd)
	m.Cancel()

	assert.Empty(t, eds(m))
	assert.Equal(t, "1", m.CurrEd().String())
}

func TestMachine_ConfirmCurrentEd(t *testing.T) {
	m, _ := newMachine(t, "X")
	ctx := context.Background()

	m.Open(ModeCurrentEd)
	m.Confirm(ctx, "12b")

	assert.Equal(t, ModeNone, m.Mode())
	assert.Equal(t, "12B", m.CurrEd().String())
	assert.Equal(t, []string{"12B"}, eds(m))

	m.Open(ModeCurrentEd)
	m.Confirm(ctx, "B12")
	assert.Equal(t, ModeNone, m.Mode())
	assert.Equal(t, "12B", m.CurrEd().String())
	assert.Equal(t, []string{"12B"}, eds(m))
}

func TestMachine_ConfirmCustomEdAddsSlotOnly(t *testing.T) {
	m, _ := newMachine(t, "X")

	m.Open(ModeCustomEd)
	m.Confirm(context.Background(), "40")

	curr, ok := m.Slots().Curr()
	require.True(t, ok)
	assert.Equal(t, "40", curr.String())
	assert.Empty(t, eds(m))
}

func TestMachine_ConfirmFillToEd(t *testing.T) {
	m, _ := newMachine(t, "X")
	ctx := context.Background()

	m.Open(ModeFillToEd)
	m.Confirm(ctx, "4")

	assert.Equal(t, []string{"2", "3", "4"}, eds(m))
	assert.Equal(t, "4", m.CurrEd().String())

	// Target not ahead of the current ED does nothing
	m.Open(ModeFillToEd)
	m.Confirm(ctx, "2")
	assert.Len(t, eds(m), 3)

	m.Open(ModeFillToEd)
	m.Confirm(ctx, "junk")
	assert.Len(t, eds(m), 3)
	assert.Equal(t, ModeNone, m.Mode())
}

func TestMachine_ConfirmFillByCount(t *testing.T) {
	m, _ := newMachine(t, "X")
	ctx := context.Background()

	m.Open(ModeFillByCount)
	m.Confirm(ctx, "3")
	assert.Equal(t, []string{"2", "3", "4"}, eds(m))

	for _, bad := range []string{"abc", "", "-2", "0"} {
		m.Open(ModeFillByCount)
		m.Confirm(ctx, bad)
	}
	assert.Len(t, eds(m), 3)
	assert.Equal(t, "4", m.CurrEd().String())
}

func TestMachine_ConfirmJumpTo(t *testing.T) {
	m, viewer := newMachine(t, "X", "X", "Y")
	ctx := context.Background()

	m.Open(ModeJumpTo)
	m.Confirm(ctx, "3")
	assert.Equal(t, 2, m.Navigator().Index())
	assert.Equal(t, []string{"ark3"}, viewer.shown)

	m.Open(ModeJumpTo)
	m.Confirm(ctx, "9")
	assert.Equal(t, 2, m.Navigator().Index())
}

func TestMachine_RemoveList(t *testing.T) {
	m, _ := newMachine(t, "X")
	ctx := context.Background()

	assert.Nil(t, m.OpenRemoveList())
	assert.Equal(t, ModeNone, m.Mode())

	m.Open(ModeFillByCount)
	m.Confirm(ctx, "4")

	items := m.OpenRemoveList()
	assert.Equal(t, []string{"2", "3", "4", "5"}, items)
	assert.Equal(t, ModeRemoveList, m.Mode())
	assert.False(t, m.Open(ModeCurrentEd))

	m.DismissRemoveList(ctx, []string{"3", "5"})
	assert.Equal(t, ModeNone, m.Mode())
	assert.Equal(t, []string{"2", "4"}, eds(m))
}

func TestMachine_NextImageWithinAndAcrossMetro(t *testing.T) {
	m, viewer := newMachine(t, "X", "X", "Y")
	ctx := context.Background()

	m.AddNextEd(ctx)
	m.AddNextEd(ctx)
	require.Equal(t, "3", m.CurrEd().String())

	m.NextImage(ctx)
	assert.Equal(t, []domain.Direction{domain.Forward}, viewer.steps)
	assert.Empty(t, viewer.shown)
	assert.Equal(t, "3", m.CurrEd().String())

	m.NextImage(ctx)
	assert.Equal(t, []string{"ark3"}, viewer.shown)
	assert.Equal(t, "1", m.CurrEd().String(), "fresh metro reseeds to 1")

	m.NextImage(ctx)
	assert.Equal(t, "at last image", m.Status())
	assert.Equal(t, 2, m.Navigator().Index())

	// Crossing back seeds with the largest ED of the metro
	m.PrevImage(ctx)
	assert.Equal(t, []string{"ark3", "ark2"}, viewer.shown)
	assert.Equal(t, "3", m.CurrEd().String())
}

func TestMachine_MetroJumps(t *testing.T) {
	m, viewer := newMachine(t, "A", "A", "B", "B")
	ctx := context.Background()

	m.NextMetro(ctx)
	assert.Equal(t, 2, m.Navigator().Index())

	m.NextMetro(ctx)
	assert.Equal(t, "no such image", m.Status())

	m.PrevMetro(ctx)
	assert.Equal(t, 1, m.Navigator().Index())

	m.JumpToMetro(ctx, "B")
	assert.Equal(t, 2, m.Navigator().Index())
	assert.Equal(t, []string{"ark3", "ark2", "ark3"}, viewer.shown)
}

func TestMachine_Undo(t *testing.T) {
	m, _ := newMachine(t, "X", "X")
	ctx := context.Background()

	m.AddNextEd(ctx)
	m.AddNextEd(ctx)
	require.Equal(t, "3", m.CurrEd().String())

	m.Undo(ctx)
	assert.Equal(t, []string{"2"}, eds(m))
	assert.Equal(t, "2", m.CurrEd().String())

	// Undo on an empty image steps back first
	m.NextImage(ctx)
	m.Undo(ctx)
	assert.Equal(t, 0, m.Navigator().Index())
	assert.Empty(t, eds(m))
	assert.Equal(t, "1", m.CurrEd().String())

	m.Undo(ctx)
	assert.Equal(t, "nothing to undo", m.Status())
}

func TestMachine_AddPrevEdFloorsAtOne(t *testing.T) {
	m, _ := newMachine(t, "X")
	ctx := context.Background()

	m.AddPrevEd(ctx)
	m.AddPrevEd(ctx)

	assert.Equal(t, []string{"1"}, eds(m))
	assert.Equal(t, "1", m.CurrEd().String())
}

func TestMachine_Slots(t *testing.T) {
	m, _ := newMachine(t, "X")
	ctx := context.Background()

	// Slot gestures on an empty list are no-ops
	m.SlotIncrement(ctx)
	m.SlotRecord(ctx)
	m.SlotRemove()
	assert.Empty(t, eds(m))

	m.Open(ModeCustomEd)
	m.Confirm(ctx, "5")
	m.Open(ModeCustomEd)
	m.Confirm(ctx, "9")

	m.SlotPrev()
	m.SlotIncrement(ctx)
	m.SlotNext()
	m.SlotRecord(ctx)
	m.SlotDecrement(ctx)

	assert.Equal(t, []string{"6", "9", "8"}, eds(m))
	assert.Equal(t, "1", m.CurrEd().String(), "slots leave the current ED alone")

	m.SlotRemove()
	assert.Equal(t, 1, m.Slots().Len())
}

func TestMachine_SkipToLastEntered(t *testing.T) {
	m, viewer := newMachine(t, "X", "X", "Y")
	ctx := context.Background()

	m.SkipToLastEntered(ctx)
	assert.Equal(t, "nothing entered yet", m.Status())

	m.NextImage(ctx)
	m.Open(ModeCurrentEd)
	m.Confirm(ctx, "7")
	m.NextImage(ctx)
	m.Open(ModeCurrentEd)
	m.Confirm(ctx, "30")
	m.PrevMetro(ctx)
	m.PrevImage(ctx)
	require.Equal(t, 0, m.Navigator().Index())

	m.SkipToLastEnteredWithinMetro(ctx)
	assert.Equal(t, 1, m.Navigator().Index())
	assert.Equal(t, "7", m.CurrEd().String())

	m.SkipToLastEntered(ctx)
	assert.Equal(t, 2, m.Navigator().Index())
	assert.Equal(t, "30", m.CurrEd().String())
	assert.Equal(t, "ark3", viewer.shown[len(viewer.shown)-1])
}

func TestMachine_TakeStatusClears(t *testing.T) {
	m, _ := newMachine(t, "X")

	m.PrevImage(context.Background())
	assert.Equal(t, "at first image", m.TakeStatus())
	assert.Empty(t, m.TakeStatus())
}

func TestMachine_StartResumes(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	imgs := func() []*domain.Image {
		return []*domain.Image{
			{Ark: "a1", UTPCode: "X"},
			{Ark: "a2", UTPCode: "X"},
			{Ark: "a3", UTPCode: "Y"},
		}
	}

	nav, err := navigator.New(ctx, backing, imgs(), nil)
	require.NoError(t, err)
	require.NoError(t, nav.JumpTo(1))
	nav.AddEdToCurrent(ctx, "9")
	nav.AddEdToCurrent(ctx, "4")

	// A fresh session over the same store
	nav, err = navigator.New(ctx, backing, imgs(), nil)
	require.NoError(t, err)
	viewer := &recordingViewer{}
	m := NewMachine(ctx, nav, viewer, "{ark}", nil)

	m.Start(ctx, true)
	assert.Equal(t, 1, nav.Index())
	assert.Equal(t, "4", m.CurrEd().String(), "last entered, not largest")
	assert.Equal(t, []string{"a2"}, viewer.shown)
	assert.Empty(t, m.Status())
}

func TestMachine_StartWithoutResume(t *testing.T) {
	m, viewer := newMachine(t, "X", "Y")

	m.Start(context.Background(), false)
	assert.Equal(t, 0, m.Navigator().Index())
	assert.Equal(t, []string{"ark1"}, viewer.shown)

	m2, viewer2 := newMachine(t, "X", "Y")
	m2.Start(context.Background(), true)
	assert.Equal(t, []string{"ark1"}, viewer2.shown, "nothing entered yet still shows the first image")
	assert.Empty(t, m2.Status())
}
