package annotate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmcdole/edtag/internal/domain"
	"github.com/mmcdole/edtag/internal/navigator"
)

// maxFillSteps bounds a single fill gesture so a mistyped target cannot
// flood an image with thousands of EDs.
const maxFillSteps = 500

// Machine turns operator gestures into navigator mutations and ED arithmetic.
// It owns the current ED, the manual slots and the focused input mode.
// Every method runs to completion before the next gesture is accepted.
type Machine struct {
	nav         *navigator.Navigator
	viewer      domain.Viewer
	urlTemplate string
	logger      *slog.Logger

	mode        Mode
	currEd      domain.Ed
	slots       *domain.ManualSlots
	removeItems []string
	status      string
}

// NewMachine seeds the current ED from the largest ED already recorded
// in the starting metro.
func NewMachine(ctx context.Context, nav *navigator.Navigator, viewer domain.Viewer, urlTemplate string, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Machine{
		nav:         nav,
		viewer:      viewer,
		urlTemplate: urlTemplate,
		logger:      logger,
		currEd:      domain.NewEd(1, ""),
		slots:       domain.NewManualSlots(),
	}
	m.seedCurrEd(ctx)
	return m
}

// === State ===

func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) CurrEd() domain.Ed { return m.currEd }

func (m *Machine) Slots() *domain.ManualSlots { return m.slots }

func (m *Machine) Navigator() *navigator.Navigator { return m.nav }

// RemoveItems is the list shown while in ModeRemoveList.
func (m *Machine) RemoveItems() []string { return m.removeItems }

// Status is a one-line description of the last gesture's outcome.
func (m *Machine) Status() string { return m.status }

// TakeStatus returns the status line and clears it, so a caller polling after
// every gesture sees each outcome once.
func (m *Machine) TakeStatus() string {
	s := m.status
	m.status = ""
	return s
}

// Start shows the starting image in the viewer. With resume the cursor
// first moves to the last annotated image and picks up its last ED.
func (m *Machine) Start(ctx context.Context, resume bool) {
	before := m.nav.Index()
	if resume {
		m.SkipToLastEntered(ctx)
		m.status = ""
	}
	if m.nav.Index() == before {
		m.show()
	}
}

// === Input modes ===

// Open focuses a text input. Only valid from ModeNone.
func (m *Machine) Open(mode Mode) bool {
	if m.mode != ModeNone || !mode.IsTyping() {
		return false
	}
	m.mode = mode
	return true
}

// Cancel abandons the focused input without side effects.
func (m *Machine) Cancel() {
	m.mode = ModeNone
	m.removeItems = nil
}

// Confirm commits text to the focused input and returns to ModeNone.
// Unparseable text is dropped silently.
func (m *Machine) Confirm(ctx context.Context, text string) {
	mode := m.mode
	m.mode = ModeNone

	switch mode {
	case ModeCurrentEd:
		ed, ok := domain.ParseEd(text)
		if !ok {
			return
		}
		m.currEd = ed
		m.record(ctx, ed)

	case ModeCustomEd:
		if ed, ok := m.slots.AddSlot(text); ok {
			m.status = "added slot " + ed.String()
		}

	case ModeFillToEd:
		target, ok := domain.ParseEd(text)
		if !ok {
			return
		}
		steps := 0
		for m.currEd.Less(target) && steps < maxFillSteps {
			m.AddNextEd(ctx)
			steps++
		}
		m.logFillCapped(steps, text)

	case ModeFillByCount:
		count, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || count <= 0 {
			return
		}
		count = min(count, maxFillSteps)
		for range count {
			m.AddNextEd(ctx)
		}

	case ModeJumpTo:
		pos, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return
		}
		m.jump(ctx, func() bool { return m.nav.JumpTo(pos-1) == nil })
	}
}

func (m *Machine) logFillCapped(steps int, target string) {
	if steps == maxFillSteps {
		m.logger.Warn("fill stopped at step limit", "target", target, "limit", maxFillSteps)
	}
}

// OpenRemoveList enters ModeRemoveList with the current image's EDs.
// Returns nil and stays in ModeNone if the image has none.
func (m *Machine) OpenRemoveList() []string {
	if m.mode != ModeNone {
		return nil
	}
	items := m.nav.Curr().Eds.Values()
	if len(items) == 0 {
		m.status = "no EDs to remove"
		return nil
	}
	m.mode = ModeRemoveList
	m.removeItems = items
	return items
}

// DismissRemoveList removes every selected ED and returns to ModeNone.
func (m *Machine) DismissRemoveList(ctx context.Context, selected []string) {
	if m.mode != ModeRemoveList {
		return
	}
	m.mode = ModeNone
	m.removeItems = nil

	removed := 0
	for _, ed := range selected {
		if m.nav.RemoveEd(ctx, ed) {
			removed++
		}
	}
	if removed > 0 {
		m.status = fmt.Sprintf("removed %d ED(s)", removed)
	}
}

// === Navigation ===

// NextImage steps forward. Within a metro the viewer steps with its own
// control; crossing into a new metro reloads by URL and reseeds the current ED.
func (m *Machine) NextImage(ctx context.Context) {
	m.step(ctx, domain.Forward)
}

// PrevImage steps backward; see NextImage.
func (m *Machine) PrevImage(ctx context.Context) {
	m.step(ctx, domain.Backward)
}

func (m *Machine) step(ctx context.Context, dir domain.Direction) {
	old := m.nav.Curr()

	var err error
	if dir == domain.Forward {
		_, err = m.nav.Advance()
	} else {
		_, err = m.nav.Retreat()
	}
	if errors.Is(err, domain.ErrOutOfRange) {
		if dir == domain.Forward {
			m.status = "at last image"
		} else {
			m.status = "at first image"
		}
		return
	}

	curr := m.nav.Curr()
	if curr.UTPCode == old.UTPCode {
		err := m.viewer.Step(dir)
		switch {
		case errors.Is(err, domain.ErrStepUnsupported):
			m.show()
		case err != nil:
			m.logger.Warn("viewer step failed", "error", err, "direction", dir.String())
		}
		m.status = ""
		return
	}

	m.show()
	m.seedCurrEd(ctx)
	m.status = "entered " + curr.UTPCode
}

// NextMetro jumps to the first image of the next metro.
func (m *Machine) NextMetro(ctx context.Context) {
	m.jump(ctx, func() bool {
		_, ok := m.nav.NextMetro()
		return ok
	})
}

// PrevMetro jumps to the last image of the previous metro.
func (m *Machine) PrevMetro(ctx context.Context) {
	m.jump(ctx, func() bool {
		_, ok := m.nav.PrevMetro()
		return ok
	})
}

// JumpToMetro moves to the first image of utpCode.
func (m *Machine) JumpToMetro(ctx context.Context, utpCode string) {
	m.jump(ctx, func() bool { return m.nav.JumpToMetro(utpCode) })
}

// SkipToLastEntered resumes at the last annotated image in the collection.
func (m *Machine) SkipToLastEntered(ctx context.Context) {
	m.resume(ctx, m.nav.SkipToLastEntered)
}

// SkipToLastEnteredWithinMetro resumes at the last annotated image in the current metro.
func (m *Machine) SkipToLastEnteredWithinMetro(ctx context.Context) {
	m.resume(ctx, m.nav.SkipToLastEnteredWithinMetro)
}

// jump runs a cursor move and, if it moved, reloads the viewer.
// The current ED is reseeded when the metro changed.
func (m *Machine) jump(ctx context.Context, move func() bool) bool {
	before := m.nav.Index()
	oldUTP := m.nav.Curr().UTPCode
	if !move() {
		m.status = "no such image"
		return false
	}
	if m.nav.Index() == before {
		return true
	}

	m.show()
	if m.nav.Curr().UTPCode != oldUTP {
		m.seedCurrEd(ctx)
	}
	m.status = ""
	return true
}

// resume is jump followed by picking up the landing image's last ED.
func (m *Machine) resume(ctx context.Context, move func() bool) {
	if !m.jump(ctx, move) {
		m.status = "nothing entered yet"
		return
	}
	if last, ok := m.nav.Curr().LastEd(); ok {
		if ed, ok := domain.ParseEd(last); ok {
			m.currEd = ed
		}
	}
}

// === Annotation ===

// AddNextEd advances the current ED and records it.
func (m *Machine) AddNextEd(ctx context.Context) {
	m.currEd.Increment()
	m.record(ctx, m.currEd)
}

// AddPrevEd steps the current ED back (floor 1) and records it.
func (m *Machine) AddPrevEd(ctx context.Context) {
	m.currEd.Decrement()
	m.record(ctx, m.currEd)
}

// RecordCurrentEd records the current ED unchanged.
func (m *Machine) RecordCurrentEd(ctx context.Context) {
	m.record(ctx, m.currEd)
}

// Undo removes the most recently inserted ED. On an image with nothing
// recorded it first steps back one image and undoes there. If the removed
// ED is the current ED, the current ED steps back as well.
func (m *Machine) Undo(ctx context.Context) {
	if m.nav.Curr().Eds.Len() == 0 {
		if m.nav.Index() == 0 {
			m.status = "nothing to undo"
			return
		}
		m.PrevImage(ctx)
	}

	removed, ok := m.nav.RemoveLastEd(ctx)
	if !ok {
		m.status = "nothing to undo"
		return
	}
	if removed == m.currEd.String() {
		m.currEd.Decrement()
	}
	m.status = "removed " + removed
}

// === Manual slots ===

func (m *Machine) SlotNext() { m.slots.Next() }
func (m *Machine) SlotPrev() { m.slots.Prev() }

// SlotIncrement bumps the focused slot and records the new value.
func (m *Machine) SlotIncrement(ctx context.Context) {
	if ed, ok := m.slots.IncrementCurr(); ok {
		m.record(ctx, ed)
	}
}

// SlotDecrement lowers the focused slot and records the new value.
func (m *Machine) SlotDecrement(ctx context.Context) {
	if ed, ok := m.slots.DecrementCurr(); ok {
		m.record(ctx, ed)
	}
}

// SlotRecord records the focused slot unchanged.
func (m *Machine) SlotRecord(ctx context.Context) {
	if ed, ok := m.slots.Curr(); ok {
		m.record(ctx, ed)
	}
}

// SlotRemove drops the focused slot.
func (m *Machine) SlotRemove() {
	if ed, ok := m.slots.RemoveCurr(); ok {
		m.status = "dropped slot " + ed.String()
	}
}

// === Helpers ===

func (m *Machine) record(ctx context.Context, ed domain.Ed) {
	if m.nav.AddEdToCurrent(ctx, ed.String()) {
		m.status = "recorded " + ed.String()
	} else {
		m.status = "failed to record " + ed.String()
	}
}

func (m *Machine) seedCurrEd(ctx context.Context) {
	seed := m.nav.LargestEdForCurrentMetro(ctx)
	if ed, ok := domain.ParseEd(seed); ok {
		m.currEd = ed
	} else {
		m.currEd = domain.NewEd(1, "")
	}
}

func (m *Machine) show() {
	url := m.nav.Curr().URL(m.urlTemplate)
	if err := m.viewer.Show(url); err != nil {
		m.logger.Warn("viewer show failed", "error", err, "url", url)
	}
}
