package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type (
	// YearMonth is a calendar cursor. Month is zero based (0 = January).
	YearMonth struct {
		Year  int
		Month int
	}

	// Date is a plain calendar date with a zero based month.
	Date struct {
		Year  int
		Month int
		Day   int
	}

	// EventRecord is a year-less annotation attached to a (day, month) pair.
	// It matches the same day and month of every year.
	EventRecord struct {
		Day   int    `json:"day" yaml:"day"`
		Month int    `json:"month" yaml:"month"`
		Label string `json:"label" yaml:"label"`
	}

	// DayCell is one entry of a month grid.
	DayCell struct {
		Day       int          `json:"day"`
		IsPadding bool         `json:"is_padding"`
		IsToday   bool         `json:"is_today"`
		Event     *EventRecord `json:"event,omitempty"`
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrEmptyLabel       = errors.New("empty label")
	ErrInvalidYearMonth = errors.New("invalid year-month")
	ErrLabelTooLong     = errors.New("label too long")
)

// MaxLabelLength is the longest accepted label, in characters.
const MaxLabelLength = 200

// NewYearMonth builds a cursor, carrying any month overflow into the year.
func NewYearMonth(year, month int) YearMonth {
	return YearMonth{Year: year, Month: month}.Normalize()
}

// YearMonthOf returns the cursor that contains t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Normalize folds Month into [0,11], adjusting Year accordingly.
func (ym YearMonth) Normalize() YearMonth {
	y, m := ym.Year, ym.Month
	y += m / 12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	return YearMonth{Year: y, Month: m}
}

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}.Normalize()
}

// Prev returns the preceding month.
func (ym YearMonth) Prev() YearMonth {
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}.Normalize()
}

// Compare returns -1, 0 or +1 ordering ym chronologically against other.
func (ym YearMonth) Compare(other YearMonth) int {
	a, b := ym.index(), other.index()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (ym YearMonth) Equal(other YearMonth) bool {
	return ym.Compare(other) == 0
}

func (ym YearMonth) index() int {
	n := ym.Normalize()
	return n.Year*12 + n.Month
}

// String renders the cursor with a human, one based month: "2026-03".
func (ym YearMonth) String() string {
	n := ym.Normalize()
	return fmt.Sprintf("%04d-%02d", n.Year, n.Month+1)
}

// ParseYearMonth parses "YYYY-MM" where MM is 1-12.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return YearMonth{Year: year, Month: month - 1}, nil
}

// DateOf converts t to a calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m) - 1, Day: d}
}

func (r EventRecord) Validate() error {
	if r.Day < 1 || r.Day > 31 {
		return ErrInvalidDay
	}
	if r.Month < 0 || r.Month > 11 {
		return ErrInvalidMonth
	}
	if strings.TrimSpace(r.Label) == "" {
		return ErrEmptyLabel
	}
	if utf8.RuneCountInString(r.Label) > MaxLabelLength {
		return fmt.Errorf("%w (max %d characters)", ErrLabelTooLong, MaxLabelLength)
	}
	return nil
}
