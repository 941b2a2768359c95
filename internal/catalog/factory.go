package catalog

import (
	"context"
	"fmt"

	"atletica/internal/core"
	applog "atletica/internal/log"
	"atletica/internal/storage"
)

// SourceType names where the event list comes from.
type SourceType string

const (
	BuiltinSource SourceType = "builtin"
	YAMLSource    SourceType = "yaml"
	SQLiteSource  SourceType = "sqlite"
)

func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is known
func (st SourceType) IsValid() bool {
	switch st {
	case BuiltinSource, YAMLSource, SQLiteSource:
		return true
	default:
		return false
	}
}

// Config selects and locates the event source.
type Config struct {
	Source       SourceType
	EventsFile   string
	SQLiteDBPath string
}

// Validate validates the catalog configuration
func (c Config) Validate() error {
	if !c.Source.IsValid() {
		return fmt.Errorf("invalid events source: %s", c.Source)
	}
	switch c.Source {
	case YAMLSource:
		if c.EventsFile == "" {
			return fmt.Errorf("events file is required for yaml source")
		}
	case SQLiteSource:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite source")
		}
	}
	return nil
}

// Load reads the event list once. Every record is validated here so that
// a malformed entry stops startup instead of surfacing during a render.
func Load(ctx context.Context, cfg Config, logger *applog.Logger) ([]core.EventRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	var (
		events []core.EventRecord
		err    error
	)
	switch cfg.Source {
	case BuiltinSource:
		events = Builtin()
	case YAMLSource:
		events, err = LoadYAML(cfg.EventsFile)
	case SQLiteSource:
		events, err = loadSQLite(ctx, cfg.SQLiteDBPath)
	default:
		err = fmt.Errorf("unsupported events source: %s", cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s events: %w", cfg.Source, err)
	}

	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("load %s events: event %d (%q): %w", cfg.Source, i, ev.Label, err)
		}
	}

	applog.NewStructuredLogger(logger).LogCatalogLoaded(ctx, cfg.Source.String(), len(events))
	return events, nil
}

func loadSQLite(ctx context.Context, path string) ([]core.EventRecord, error) {
	cat, err := storage.OpenEventCatalog(path)
	if err != nil {
		return nil, err
	}
	defer cat.Close()
	return cat.Events(ctx)
}
