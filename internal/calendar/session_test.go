package calendar

import (
	"errors"
	"testing"
	"time"

	"atletica/internal/clock"
	"atletica/internal/core"
)

func newTestSession(t *testing.T, at clock.Clock) *Session {
	t.Helper()
	return NewSession(MustEventIndex(testEvents), window2026, at)
}

func TestSessionStartsOnClockMonth(t *testing.T) {
	s := newTestSession(t, clock.Date(2026, time.March, 11))
	v := s.View()
	if v.Cursor != (core.YearMonth{Year: 2026, Month: 2}) {
		t.Fatalf("cursor = %+v", v.Cursor)
	}
	if v.Label != "MARÇO" || v.Year != 2026 {
		t.Fatalf("label=%q year=%d", v.Label, v.Year)
	}
	if !v.PrevEnabled || !v.NextEnabled {
		t.Fatalf("interior month should enable both directions")
	}
	if len(v.Weekdays) != 7 {
		t.Fatalf("weekday header = %v", v.Weekdays)
	}

	var today *core.DayCell
	for i := range v.Cells {
		if v.Cells[i].IsToday {
			today = &v.Cells[i]
		}
	}
	if today == nil || today.Day != 11 || today.Event == nil || today.Event.Label != "Semáforo" {
		t.Fatalf("today cell = %+v", today)
	}
}

func TestSessionOutsideWindowStartsUnclamped(t *testing.T) {
	s := newTestSession(t, clock.Date(2027, time.October, 16))
	if s.Cursor() != (core.YearMonth{Year: 2027, Month: 9}) {
		t.Fatalf("cursor = %+v", s.Cursor())
	}
}

func TestSessionSelectCell(t *testing.T) {
	s := newTestSession(t, clock.Date(2026, time.March, 1))
	v := s.View()

	eventIdx, plainIdx := -1, -1
	for i, c := range v.Cells {
		if c.Event != nil && eventIdx < 0 {
			eventIdx = i
		}
		if c.Event == nil && !c.IsPadding && plainIdx < 0 {
			plainIdx = i
		}
	}

	ev, err := s.SelectCell(eventIdx)
	if err != nil || ev == nil || ev.Label != "Semáforo" {
		t.Fatalf("SelectCell(event) = %+v, %v", ev, err)
	}
	if got := s.View().Selected; got == nil || got.Label != "Semáforo" {
		t.Fatalf("view selected = %+v", got)
	}

	ev, err = s.SelectCell(plainIdx)
	if err != nil || ev != nil {
		t.Fatalf("SelectCell(plain) = %+v, %v", ev, err)
	}
	if s.Selected() != nil {
		t.Fatalf("selection should be cleared")
	}

	if _, err := s.SelectCell(len(v.Cells)); !errors.Is(err, ErrCellOutOfRange) {
		t.Fatalf("expected ErrCellOutOfRange, got %v", err)
	}
	if _, err := s.SelectCell(-1); !errors.Is(err, ErrCellOutOfRange) {
		t.Fatalf("expected ErrCellOutOfRange, got %v", err)
	}
}

func TestSessionSelectPaddingClears(t *testing.T) {
	// April 2026 opens with three padding cells from March.
	s := newTestSession(t, clock.Date(2026, time.April, 2))
	s.Select(&core.EventRecord{Day: 11, Month: 2, Label: "Semáforo"})

	cells := s.View().Cells
	if !cells[0].IsPadding {
		t.Fatalf("expected leading padding, got %+v", cells[0])
	}
	if _, err := s.SelectCell(0); err != nil {
		t.Fatalf("SelectCell: %v", err)
	}
	if s.Selected() != nil {
		t.Fatalf("padding selection should clear the slot")
	}
}

func TestSessionNavigationKeepsSelection(t *testing.T) {
	s := newTestSession(t, clock.Date(2026, time.March, 11))
	s.Select(&core.EventRecord{Day: 12, Month: 2, Label: "Calourada"})

	s.Advance()
	if got := s.Selected(); got == nil || got.Label != "Calourada" {
		t.Fatalf("selection after Advance = %+v", got)
	}
	s.Retreat()
	s.Retreat()
	if got := s.View().Selected; got == nil || got.Label != "Calourada" {
		t.Fatalf("selection after Retreat = %+v", got)
	}

	s.Dismiss()
	if s.Selected() != nil {
		t.Fatalf("Dismiss should clear")
	}
}

func TestSessionReadsClockPerView(t *testing.T) {
	now := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	s := NewSession(MustEventIndex(testEvents), window2026, clock.Func(func() time.Time { return now }))

	first := todayDay(s.View().Cells)
	now = now.AddDate(0, 0, 1)
	second := todayDay(s.View().Cells)
	if first != 11 || second != 12 {
		t.Fatalf("today moved %d -> %d", first, second)
	}
}

type countingGrid struct {
	inner GridBuilder
	calls int
}

func (g *countingGrid) Build(ym core.YearMonth, today core.Date) []core.DayCell {
	g.calls++
	return g.inner.Build(ym, today)
}

func TestSessionWithGridBuilder(t *testing.T) {
	idx := MustEventIndex(testEvents)
	g := &countingGrid{inner: IndexGrid{Index: idx}}
	s := NewSession(idx, window2026, clock.Date(2026, time.March, 11), WithGridBuilder(g))
	s.View()
	s.View()
	if g.calls != 2 {
		t.Fatalf("expected 2 builds, got %d", g.calls)
	}
}

func todayDay(cells []core.DayCell) int {
	for _, c := range cells {
		if c.IsToday {
			return c.Day
		}
	}
	return 0
}

func TestSessionViewWeekdaysAreCopies(t *testing.T) {
	s := newTestSession(t, clock.Date(2026, time.March, 11))
	v := s.View()
	v.Weekdays[0] = "X"

	if WeekdayHeader[0] != "D" {
		t.Fatalf("shared header mutated: %v", WeekdayHeader)
	}
	if got := s.View().Weekdays[0]; got != "D" {
		t.Fatalf("next view weekday = %q, want D", got)
	}
}
