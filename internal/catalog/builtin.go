// Package catalog loads the static list of calendar annotations from the
// configured source and exports it to other calendar formats.
package catalog

import "atletica/internal/core"

// Builtin returns the events shipped with the service. Months are zero based.
func Builtin() []core.EventRecord {
	return []core.EventRecord{
		{Day: 11, Month: 2, Label: "Semáforo"},
		{Day: 12, Month: 2, Label: "Calourada"},
	}
}
