package clock

import "time"

// Clock is the time source used to decide "today" and the initial cursor.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to a Clock.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in the local zone.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always reports t.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Date is a shorthand for a fixed clock at midnight UTC of the given date.
// month is 1-12 as in time.Month.
func Date(year int, month time.Month, day int) Clock {
	return NewFixed(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
