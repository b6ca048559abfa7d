// Package store provides sqlite-backed persistence for fetched schedules,
// the watchlist and user preferences.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"gameday/internal/core"
	"gameday/internal/logger"
)

// Store represents the SQLite-based persistence layer.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new store instance with a SQLite database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "gameday.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables.
func (s *Store) initialize() error {
	schedulesTable := `
	CREATE TABLE IF NOT EXISTS schedules (
		date TEXT PRIMARY KEY,
		events TEXT,
		fetched_at INTEGER
	);`

	watchlistTable := `
	CREATE TABLE IF NOT EXISTS watchlist (
		id TEXT PRIMARY KEY,
		event TEXT,
		date_added DATETIME
	);`

	preferencesTable := `
	CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT
	);`

	tables := []string{schedulesTable, watchlistTable, preferencesTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSchedule stores one day's events, overwriting any previous entry for
// the same date. Entries never expire; only a re-fetch replaces them.
func (s *Store) SaveSchedule(date string, events []core.SportEvent, fetchedAt int64) error {
	blob, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	query := `INSERT OR REPLACE INTO schedules (date, events, fetched_at) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, date, string(blob), fetchedAt); err != nil {
		return fmt.Errorf("failed to save schedule for %s: %w", date, err)
	}
	return nil
}

// GetSchedule retrieves the cached day for a date. A missing row returns
// (nil, nil). A corrupt stored value is logged and treated as a cache miss,
// never surfaced to the caller.
func (s *Store) GetSchedule(date string) (*core.CachedDay, error) {
	query := `SELECT events, fetched_at FROM schedules WHERE date = ?`
	row := s.db.QueryRow(query, date)

	var blob string
	var fetchedAt int64
	if err := row.Scan(&blob, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read schedule for %s: %w", date, err)
	}

	var events []core.SportEvent
	if err := json.Unmarshal([]byte(blob), &events); err != nil {
		logger.Error("corrupt cached schedule, treating as miss", err)
		return nil, nil
	}

	return &core.CachedDay{
		Date:      date,
		Events:    events,
		FetchedAt: fetchedAt,
	}, nil
}

// ToggleWatchlist adds the event when its id is absent and removes it when
// present. A full copy of the event is stored, so a watchlisted event keeps
// its data even after the originating day is re-fetched. Returns true when
// the event was added.
func (s *Store) ToggleWatchlist(event core.SportEvent) (bool, error) {
	var existing string
	err := s.db.QueryRow(`SELECT id FROM watchlist WHERE id = ?`, event.ID).Scan(&existing)
	if err == nil {
		if _, err := s.db.Exec(`DELETE FROM watchlist WHERE id = ?`, event.ID); err != nil {
			return false, fmt.Errorf("failed to remove watchlist entry: %w", err)
		}
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to read watchlist: %w", err)
	}

	blob, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("failed to encode event: %w", err)
	}
	query := `INSERT INTO watchlist (id, event, date_added) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, event.ID, string(blob), time.Now().UTC()); err != nil {
		return false, fmt.Errorf("failed to add watchlist entry: %w", err)
	}
	return true, nil
}

// IsWatchlisted reports whether an event id is on the watchlist.
func (s *Store) IsWatchlisted(id string) (bool, error) {
	var existing string
	err := s.db.QueryRow(`SELECT id FROM watchlist WHERE id = ?`, id).Scan(&existing)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read watchlist: %w", err)
	}
	return true, nil
}

// Watchlist returns all starred events in the order they were added.
// Corrupt rows are logged and skipped.
func (s *Store) Watchlist() ([]core.SportEvent, error) {
	rows, err := s.db.Query(`SELECT event FROM watchlist ORDER BY date_added`)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}
	defer rows.Close()

	var events []core.SportEvent
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		var event core.SportEvent
		if err := json.Unmarshal([]byte(blob), &event); err != nil {
			logger.Error("corrupt watchlist entry, skipping", err)
			continue
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// SavePreferences persists the single preferences row.
func (s *Store) SavePreferences(prefs core.Preferences) error {
	blob, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	query := `INSERT OR REPLACE INTO preferences (id, data) VALUES (1, ?)`
	if _, err := s.db.Exec(query, string(blob)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// LoadPreferences returns the stored preferences, or the built-in defaults
// when nothing was stored yet or the stored row is corrupt. The result is
// always fully populated.
func (s *Store) LoadPreferences() (core.Preferences, error) {
	var blob string
	err := s.db.QueryRow(`SELECT data FROM preferences WHERE id = 1`).Scan(&blob)
	if err == sql.ErrNoRows {
		return core.DefaultPreferences(), nil
	}
	if err != nil {
		return core.Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs core.Preferences
	if err := json.Unmarshal([]byte(blob), &prefs); err != nil {
		logger.Error("corrupt stored preferences, using defaults", err)
		return core.DefaultPreferences(), nil
	}
	prefs.Normalize()
	return prefs, nil
}

// Stats summarizes what the store currently holds.
type Stats struct {
	ScheduleDays   int   `json:"schedule_days"`
	WatchlistCount int   `json:"watchlist_count"`
	SizeBytes      int64 `json:"size_bytes"`
}

// GetStats returns cache statistics.
func (s *Store) GetStats() (Stats, error) {
	var stats Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM schedules`).Scan(&stats.ScheduleDays); err != nil {
		return stats, fmt.Errorf("failed to count schedules: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM watchlist`).Scan(&stats.WatchlistCount); err != nil {
		return stats, fmt.Errorf("failed to count watchlist: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}

// ClearSchedules removes every cached day. Watchlist and preferences are
// untouched.
func (s *Store) ClearSchedules() error {
	if _, err := s.db.Exec(`DELETE FROM schedules`); err != nil {
		return fmt.Errorf("failed to clear schedules: %w", err)
	}
	return nil
}
