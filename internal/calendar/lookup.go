package calendar

import (
	"fmt"

	"atletica/internal/core"
)

type eventKey struct {
	month int
	day   int
}

// EventIndex maps a (day, month) pair to its annotation. It is built once
// from a static list and never mutated afterwards.
type EventIndex struct {
	byKey   map[eventKey]core.EventRecord
	records []core.EventRecord
}

// NewEventIndex validates records and indexes them by (month, day).
// When two records share the same key the first one wins.
func NewEventIndex(records []core.EventRecord) (*EventIndex, error) {
	idx := &EventIndex{
		byKey:   make(map[eventKey]core.EventRecord, len(records)),
		records: make([]core.EventRecord, 0, len(records)),
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, r.Label, err)
		}
		idx.records = append(idx.records, r)
		k := eventKey{month: r.Month, day: r.Day}
		if _, dup := idx.byKey[k]; dup {
			continue
		}
		idx.byKey[k] = r
	}
	return idx, nil
}

// MustEventIndex is like NewEventIndex but panics on invalid records.
func MustEventIndex(records []core.EventRecord) *EventIndex {
	idx, err := NewEventIndex(records)
	if err != nil {
		panic(err)
	}
	return idx
}

// Lookup returns the annotation for day/month. The year is never compared.
func (x *EventIndex) Lookup(day, month int) (core.EventRecord, bool) {
	if x == nil {
		return core.EventRecord{}, false
	}
	r, ok := x.byKey[eventKey{month: month, day: day}]
	return r, ok
}

// Records returns the loaded records in their original order.
func (x *EventIndex) Records() []core.EventRecord {
	if x == nil {
		return nil
	}
	return append([]core.EventRecord(nil), x.records...)
}

func (x *EventIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byKey)
}
