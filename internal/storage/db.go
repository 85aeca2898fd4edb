package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"winmatch/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS rule_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp DATETIME NOT NULL,
    rule TEXT NOT NULL,
    kind TEXT NOT NULL,
    window_title TEXT NOT NULL,
    window_class TEXT NOT NULL,
    window_pid INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_rule_events_rule ON rule_events(rule);
`

// New opens the event database in the user config directory.
func New() (*DB, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config directory: %w", err)
	}

	dbDir := filepath.Join(configDir, "winmatch")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return Open(filepath.Join(dbDir, "events.db"))
}

// Open opens (and if needed creates) an event database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// AddEvent appends one rule transition.
func (d *DB) AddEvent(ev models.RuleEvent) error {
	query := `
		INSERT INTO rule_events (
			timestamp, rule, kind, window_title, window_class, window_pid
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		ev.Timestamp, ev.Rule, string(ev.Kind), ev.Title, ev.Class, ev.PID)
	if err != nil {
		return fmt.Errorf("failed to insert rule event: %w", err)
	}
	return nil
}

// RecentEvents returns the newest events, optionally filtered by rule name,
// newest first.
func (d *DB) RecentEvents(rule string, limit int) ([]models.RuleEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT timestamp, rule, kind, window_title, window_class, window_pid
		FROM rule_events
	`
	args := []interface{}{}
	if rule != "" {
		query += " WHERE rule = ?"
		args = append(args, rule)
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rule events: %w", err)
	}
	defer rows.Close()

	var events []models.RuleEvent
	for rows.Next() {
		var ev models.RuleEvent
		var kind string
		if err := rows.Scan(&ev.Timestamp, &ev.Rule, &kind, &ev.Title, &ev.Class, &ev.PID); err != nil {
			return nil, fmt.Errorf("failed to scan rule event: %w", err)
		}
		ev.Kind = models.EventKind(kind)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Cleanup drops events older than the retention window.
func (d *DB) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := d.db.Exec("DELETE FROM rule_events WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup old rule events: %w", err)
	}
	return nil
}
