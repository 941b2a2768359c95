package calendar

import (
	"errors"
	"fmt"

	"atletica/internal/clock"
	"atletica/internal/core"
)

var ErrCellOutOfRange = errors.New("cell index out of range")

// View is what the rendering layer needs to draw the widget.
type View struct {
	Cursor      core.YearMonth    `json:"-"`
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	Label       string            `json:"label"`
	Weekdays    []string          `json:"weekdays"`
	Cells       []core.DayCell    `json:"cells"`
	PrevEnabled bool              `json:"prev_enabled"`
	NextEnabled bool              `json:"next_enabled"`
	Selected    *core.EventRecord `json:"selected,omitempty"`
}

// Session is the view-controller for one interactive calendar. It is not
// safe for concurrent use; its owner serializes calls.
type Session struct {
	nav   *Navigator
	sel   Selection
	grid  GridBuilder
	clock clock.Clock
}

type SessionOption func(*Session)

// WithGridBuilder replaces the grid source, e.g. with a caching one.
func WithGridBuilder(g GridBuilder) SessionOption {
	return func(s *Session) {
		if g != nil {
			s.grid = g
		}
	}
}

// NewSession starts a session on the clock's current month. The start
// month is not clamped into window.
func NewSession(index *EventIndex, window Window, clk clock.Clock, opts ...SessionOption) *Session {
	if clk == nil {
		clk = clock.NewSystem()
	}
	s := &Session{
		nav:   NewNavigator(core.YearMonthOf(clk.Now()), window),
		grid:  IndexGrid{Index: index},
		clock: clk,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Cursor() core.YearMonth { return s.nav.Cursor() }

// Advance and Retreat leave the selection untouched.
func (s *Session) Advance() bool { return s.nav.Advance() }

func (s *Session) Retreat() bool { return s.nav.Retreat() }

func (s *Session) Select(ev *core.EventRecord) { s.sel.Select(ev) }

func (s *Session) Dismiss() { s.sel.Dismiss() }

func (s *Session) Selected() *core.EventRecord { return s.sel.Current() }

// SelectCell selects whatever event sits in cell i of the current grid.
// Padding and event-less cells clear the selection.
func (s *Session) SelectCell(i int) (*core.EventRecord, error) {
	cells := s.cells(core.DateOf(s.clock.Now()))
	if i < 0 || i >= len(cells) {
		return nil, fmt.Errorf("%w: %d (grid has %d cells)", ErrCellOutOfRange, i, len(cells))
	}
	s.sel.Select(cells[i].Event)
	return s.sel.Current(), nil
}

// View snapshots the session. The clock is read once per call.
func (s *Session) View() View {
	today := core.DateOf(s.clock.Now())
	cur := s.nav.Cursor()
	return View{
		Cursor:      cur,
		Year:        cur.Year,
		Month:       cur.Month,
		Label:       MonthLabel(cur.Month),
		Weekdays:    append([]string(nil), WeekdayHeader...),
		Cells:       s.cells(today),
		PrevEnabled: s.nav.PrevEnabled(),
		NextEnabled: s.nav.NextEnabled(),
		Selected:    s.sel.Current(),
	}
}

func (s *Session) cells(today core.Date) []core.DayCell {
	return s.grid.Build(s.nav.Cursor(), today)
}
