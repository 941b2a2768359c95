package calendar

import (
	"time"

	"atletica/internal/core"
)

// BuildMonth lays out the cells shown for ym: trailing days of the previous
// month, every day of ym, then leading days of the next month.
//
// The total is exactly lead + daysInMonth + (6 - lastWeekday). Callers must
// use the cells as returned and not pad them any further.
func BuildMonth(ym core.YearMonth, today core.Date, index *EventIndex) []core.DayCell {
	ym = ym.Normalize()
	year, month := ym.Year, ym.Month

	lead := Weekday(year, month, 1)
	lastDate := DaysIn(year, month)
	lastWeekday := Weekday(year, month, lastDate)
	prev := ym.Prev()
	prevLastDate := DaysIn(prev.Year, prev.Month)

	cells := make([]core.DayCell, 0, lead+lastDate+(6-lastWeekday))

	for i := lead; i > 0; i-- {
		cells = append(cells, core.DayCell{Day: prevLastDate - i + 1, IsPadding: true})
	}

	for day := 1; day <= lastDate; day++ {
		cell := core.DayCell{
			Day:     day,
			IsToday: today == core.Date{Year: year, Month: month, Day: day},
		}
		if ev, ok := index.Lookup(day, month); ok {
			cell.Event = &ev
		}
		cells = append(cells, cell)
	}

	for i := lastWeekday; i < 6; i++ {
		cells = append(cells, core.DayCell{Day: i - lastWeekday + 1, IsPadding: true})
	}

	return cells
}

// DaysIn returns the number of days in the zero based month of year.
func DaysIn(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// Weekday returns 0 (Sunday) through 6 (Saturday) for the given date.
func Weekday(year, month, day int) int {
	return int(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// GridBuilder produces the cells for a month as seen on a given day.
type GridBuilder interface {
	Build(ym core.YearMonth, today core.Date) []core.DayCell
}

// IndexGrid builds grids straight from an EventIndex.
type IndexGrid struct {
	Index *EventIndex
}

func (g IndexGrid) Build(ym core.YearMonth, today core.Date) []core.DayCell {
	return BuildMonth(ym, today, g.Index)
}
