package cache

import (
	"fmt"

	"atletica/internal/calendar"
	"atletica/internal/core"
)

// GridCache memoizes month grids. Grids depend only on the month, the day
// considered "today" and the event index, which is fixed for the lifetime
// of the cache.
type GridCache struct {
	inner calendar.GridBuilder
	store Cache[[]core.DayCell]
}

// NewGridCache wraps inner with store. Expiry and eviction are up to store;
// an *LRUCache also needs registering with a Manager to drop stale grids.
func NewGridCache(inner calendar.GridBuilder, store Cache[[]core.DayCell]) *GridCache {
	return &GridCache{
		inner: inner,
		store: store,
	}
}

func gridKey(ym core.YearMonth, today core.Date) string {
	ym = ym.Normalize()
	// today only matters when it falls inside the displayed month.
	if today.Year != ym.Year || today.Month != ym.Month {
		today = core.Date{}
	}
	return fmt.Sprintf("%d-%d|%d-%d-%d", ym.Year, ym.Month, today.Year, today.Month, today.Day)
}

// Build returns a private copy of the cached grid, building it on a miss.
func (g *GridCache) Build(ym core.YearMonth, today core.Date) []core.DayCell {
	key := gridKey(ym, today)
	cells, ok := g.store.Get(key)
	if !ok {
		cells = g.inner.Build(ym, today)
		g.store.Set(key, cells)
	}
	return cloneCells(cells)
}

// Size reports how many grids are currently held.
func (g *GridCache) Size() int { return g.store.Size() }

func cloneCells(in []core.DayCell) []core.DayCell {
	out := make([]core.DayCell, len(in))
	copy(out, in)
	for i := range out {
		if out[i].Event != nil {
			ev := *out[i].Event
			out[i].Event = &ev
		}
	}
	return out
}
