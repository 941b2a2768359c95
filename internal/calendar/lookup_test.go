package calendar

import (
	"errors"
	"testing"

	"atletica/internal/core"
)

var testEvents = []core.EventRecord{
	{Day: 11, Month: 2, Label: "Semáforo"},
	{Day: 12, Month: 2, Label: "Calourada"},
}

func TestEventIndexLookup(t *testing.T) {
	idx := MustEventIndex(testEvents)

	if ev, ok := idx.Lookup(11, 2); !ok || ev.Label != "Semáforo" {
		t.Fatalf("Lookup(11, 2) = %+v, %v", ev, ok)
	}
	if ev, ok := idx.Lookup(12, 2); !ok || ev.Label != "Calourada" {
		t.Fatalf("Lookup(12, 2) = %+v, %v", ev, ok)
	}
	for m := 0; m < 12; m++ {
		for d := 1; d <= 31; d++ {
			if m == 2 && (d == 11 || d == 12) {
				continue
			}
			if ev, ok := idx.Lookup(d, m); ok {
				t.Fatalf("Lookup(%d, %d) unexpectedly found %+v", d, m, ev)
			}
		}
	}
}

func TestEventIndexFirstMatchWins(t *testing.T) {
	idx := MustEventIndex([]core.EventRecord{
		{Day: 5, Month: 4, Label: "first"},
		{Day: 5, Month: 4, Label: "second"},
	})
	ev, ok := idx.Lookup(5, 4)
	if !ok || ev.Label != "first" {
		t.Fatalf("expected first record, got %+v", ev)
	}
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	if got := len(idx.Records()); got != 2 {
		t.Fatalf("Records() kept %d records, want 2", got)
	}
}

func TestEventIndexRejectsMalformed(t *testing.T) {
	_, err := NewEventIndex([]core.EventRecord{
		{Day: 1, Month: 0, Label: "ok"},
		{Day: 1, Month: 12, Label: "bad"},
	})
	if !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
	_, err = NewEventIndex([]core.EventRecord{{Day: 40, Month: 0, Label: "bad"}})
	if !errors.Is(err, core.ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestNilIndex(t *testing.T) {
	var idx *EventIndex
	if _, ok := idx.Lookup(11, 2); ok {
		t.Fatalf("nil index should find nothing")
	}
	if idx.Len() != 0 || idx.Records() != nil {
		t.Fatalf("nil index should be empty")
	}
}
