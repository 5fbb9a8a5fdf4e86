package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"logmon/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// AlertEntry is one persisted alert
type AlertEntry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Count     int64     `json:"count"`
	Message   string    `json:"message"`
}

// Store persists cumulative counters, follow cursors and alert history
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY between the run loop and the API
	db.SetMaxOpenConns(1)

	// Create tables if not exists
	query := `
	CREATE TABLE IF NOT EXISTS cumulative_counters (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		failed_logins INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		criticals INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS cumulative_addresses (
		address TEXT PRIMARY KEY,
		count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS cursors (
		path TEXT PRIMARY KEY,
		byte_offset INTEGER NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS alert_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		kind TEXT NOT NULL,
		severity TEXT NOT NULL,
		count INTEGER NOT NULL,
		message TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_alert_history_created ON alert_history(created_at);`
	if _, err = db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveCumulative replaces the stored totals with counts
func (s *Store) SaveCumulative(counts types.Counts) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO cumulative_counters (id, failed_logins, errors, criticals)
		VALUES (1, ?, ?, ?)`,
		counts.FailedLogins, counts.Errors, counts.Criticals)
	if err != nil {
		return fmt.Errorf("failed to save counters: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM cumulative_addresses`); err != nil {
		return fmt.Errorf("failed to clear addresses: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO cumulative_addresses (address, count) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for addr, n := range counts.Addresses {
		if _, err := stmt.Exec(addr, n); err != nil {
			return fmt.Errorf("failed to save address %s: %w", addr, err)
		}
	}

	return tx.Commit()
}

// LoadCumulative returns the stored totals, zero when nothing was saved yet
func (s *Store) LoadCumulative() (types.Counts, error) {
	counts := types.Counts{Addresses: make(map[string]int64)}

	err := s.db.QueryRow(`SELECT failed_logins, errors, criticals FROM cumulative_counters WHERE id = 1`).
		Scan(&counts.FailedLogins, &counts.Errors, &counts.Criticals)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return counts, fmt.Errorf("failed to load counters: %w", err)
	}

	rows, err := s.db.Query(`SELECT address, count FROM cumulative_addresses`)
	if err != nil {
		return counts, fmt.Errorf("failed to load addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr string
		var n int64
		if err := rows.Scan(&addr, &n); err != nil {
			continue
		}
		counts.Addresses[addr] = n
	}

	return counts, rows.Err()
}

// SaveCursor records how far path has been consumed
func (s *Store) SaveCursor(path string, offset int64) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO cursors (path, byte_offset, updated_at) VALUES (?, ?, ?)`,
		path, offset, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save cursor for %s: %w", path, err)
	}
	return nil
}

// LoadCursor returns the saved offset for path, 0 when unknown
func (s *Store) LoadCursor(path string) (int64, error) {
	var offset int64
	err := s.db.QueryRow(`SELECT byte_offset FROM cursors WHERE path = ?`, path).Scan(&offset)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load cursor for %s: %w", path, err)
	}
	return offset, nil
}

// RecordAlerts appends the alerts of one run to the history
func (s *Store) RecordAlerts(runID string, at time.Time, alerts []types.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO alert_history (run_id, created_at, kind, severity, count, message)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range alerts {
		if _, err := stmt.Exec(runID, at.UTC(), string(a.Kind), string(a.Severity), a.Count, a.Message); err != nil {
			return fmt.Errorf("failed to record alert: %w", err)
		}
	}

	return tx.Commit()
}

// RecentAlerts returns up to limit alerts, newest first
func (s *Store) RecentAlerts(limit int) ([]AlertEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, created_at, kind, severity, count, message
		FROM alert_history
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []AlertEntry{}
	for rows.Next() {
		var e AlertEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.CreatedAt, &e.Kind, &e.Severity, &e.Count, &e.Message); err != nil {
			continue
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
