package calendar

import (
	"fmt"

	"atletica/internal/core"
)

// Window bounds navigation, both ends inclusive.
type Window struct {
	Min core.YearMonth
	Max core.YearMonth
}

func (w Window) Validate() error {
	if w.Min.Compare(w.Max) > 0 {
		return fmt.Errorf("navigation window min %s is after max %s", w.Min, w.Max)
	}
	return nil
}

// Navigator owns the displayed month. Transitions never leave the window,
// but the initial cursor is taken as given, even when it lies outside.
type Navigator struct {
	cursor core.YearMonth
	window Window
}

func NewNavigator(initial core.YearMonth, window Window) *Navigator {
	return &Navigator{cursor: initial, window: window}
}

func (n *Navigator) Cursor() core.YearMonth { return n.cursor }

func (n *Navigator) Window() Window { return n.window }

// PrevEnabled reports whether Retreat can move the cursor.
func (n *Navigator) PrevEnabled() bool { return !n.cursor.Equal(n.window.Min) }

// NextEnabled reports whether Advance can move the cursor.
func (n *Navigator) NextEnabled() bool { return !n.cursor.Equal(n.window.Max) }

// Advance moves one month forward unless the cursor sits on the window max.
func (n *Navigator) Advance() bool {
	if !n.NextEnabled() {
		return false
	}
	n.cursor = n.cursor.Next()
	return true
}

// Retreat moves one month back unless the cursor sits on the window min.
func (n *Navigator) Retreat() bool {
	if !n.PrevEnabled() {
		return false
	}
	n.cursor = n.cursor.Prev()
	return true
}
