package catalog

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	ical "github.com/arran4/golang-ical"
	"golang.org/x/text/unicode/norm"

	"atletica/internal/calendar"
	"atletica/internal/core"
)

const ProductID = "-//atletica//calendar//PT"

// BuildICS renders one all-day VEVENT per record for the given year.
// Records whose day does not exist in that year (31 of a 30-day month,
// 29 February outside leap years) are skipped.
func BuildICS(year int, events []core.EventRecord, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(fmt.Sprintf("Atlética %d", year))

	used := make(map[string]bool, len(events))
	for i, ev := range events {
		if ev.Day > calendar.DaysIn(year, ev.Month) {
			continue
		}
		start := time.Date(year, time.Month(ev.Month+1), ev.Day, 0, 0, 0, 0, time.UTC)

		vev := cal.AddEvent(eventUID(start, ev.Label, i, used))
		vev.SetDtStampTime(stamp.UTC())
		vev.SetAllDayStartAt(start)
		vev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		vev.SetSummary(ev.Label)
	}
	return cal
}

// WriteICS serializes BuildICS to w.
func WriteICS(w io.Writer, year int, events []core.EventRecord, stamp time.Time) error {
	_, err := io.WriteString(w, BuildICS(year, events, stamp).Serialize())
	return err
}

// eventUID is "YYYYMMDD-<slug>@atletica". Labels without a usable slug
// become "event"; a UID already taken gets the record index appended.
func eventUID(start time.Time, label string, i int, used map[string]bool) string {
	s := slug(label)
	if s == "" {
		s = "event"
	}
	uid := fmt.Sprintf("%s-%s@atletica", start.Format("20060102"), s)
	if used[uid] {
		uid = fmt.Sprintf("%s-%s-%d@atletica", start.Format("20060102"), s, i)
	}
	used[uid] = true
	return uid
}

// slug lowercases label, strips accents and joins words with dashes.
func slug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFD.String(strings.ToLower(label)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
