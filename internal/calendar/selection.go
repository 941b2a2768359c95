package calendar

import "atletica/internal/core"

// Selection holds at most one annotation currently shown to the user.
type Selection struct {
	current *core.EventRecord
}

// Select replaces the slot. A nil event clears it.
func (s *Selection) Select(ev *core.EventRecord) {
	if ev == nil {
		s.current = nil
		return
	}
	cp := *ev
	s.current = &cp
}

func (s *Selection) Dismiss() {
	s.current = nil
}

// Current returns a copy of the selected event, or nil.
func (s *Selection) Current() *core.EventRecord {
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}
