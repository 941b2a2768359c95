package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"atletica/internal/core"

	_ "modernc.org/sqlite"
)

// EventCatalog reads the configured event list from SQLite. The service
// only reads from it; rows are managed out of band.
type EventCatalog struct {
	db *sql.DB
}

func OpenEventCatalog(dbPath string) (*EventCatalog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &EventCatalog{db: db}, nil
}

func (c *EventCatalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Events returns every row in insertion order. Malformed rows fail the
// whole load.
func (c *EventCatalog) Events(ctx context.Context) ([]core.EventRecord, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, day, month, label FROM calendar_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []core.EventRecord
	for rows.Next() {
		var (
			id  int64
			rec core.EventRecord
		)
		if err := rows.Scan(&id, &rec.Day, &rec.Month, &rec.Label); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("event row %d: %w", id, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// Insert adds an event row. Used for seeding and tests.
func (c *EventCatalog) Insert(ctx context.Context, rec core.EventRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT INTO calendar_events (day, month, label) VALUES (?, ?, ?)`,
		rec.Day, rec.Month, rec.Label); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}
