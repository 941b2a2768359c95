package cache

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	applog "atletica/internal/log"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Size() int
}

// Cleaner interface for caches that support cleanup
type Cleaner interface {
	CleanExpired() int
}

// Manager sweeps expired entries of every registered cache on a cron schedule.
type Manager struct {
	mu     sync.Mutex
	caches []Cleaner
	cron   *cron.Cron
	logger *applog.Logger
}

// NewManager creates a new cache manager
func NewManager(logger *applog.Logger) *Manager {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Manager{
		logger: logger.WithComponent(applog.ComponentCache),
	}
}

// Register adds a cache to the manager for cleanup
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches = append(m.caches, c)
}

// Sweep runs one cleanup pass and returns how many entries were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	caches := append([]Cleaner(nil), m.caches...)
	m.mu.Unlock()

	total := 0
	for _, c := range caches {
		total += c.CleanExpired()
	}
	if total > 0 {
		m.logger.Debug("Expired cache entries removed",
			applog.FieldOperation, applog.OpCleanup,
			applog.FieldCount, total)
	}
	return total
}

// StartCleanup schedules Sweep using a standard cron spec such as
// "*/5 * * * *" or "@every 5m".
func (m *Manager) StartCleanup(schedule string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != nil {
		return fmt.Errorf("cache cleanup already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { m.Sweep() }); err != nil {
		return fmt.Errorf("schedule cache cleanup %q: %w", schedule, err)
	}
	c.Start()
	m.cron = c
	return nil
}

// Stop gracefully stops the cleanup routine
func (m *Manager) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
