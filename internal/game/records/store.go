// Package records persists per-stage best results in a local SQLite
// database.
package records

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Record is one stage's best result.
type Record struct {
	Stage     int
	ClearTime float64 // seconds
	ShotCount int
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the records database.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// migrate creates the schema if it does not exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		stage INTEGER PRIMARY KEY,
		clear_time REAL NOT NULL,
		shot_count INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrating records schema: %w", err)
	}
	return nil
}

// Best returns the stored record for a stage, and whether one exists.
func (s *Store) Best(stage int) (Record, bool, error) {
	var rec Record
	err := s.conn.QueryRow(
		"SELECT stage, clear_time, shot_count FROM records WHERE stage = ?", stage,
	).Scan(&rec.Stage, &rec.ClearTime, &rec.ShotCount)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Submit stores the result if it beats (strictly lowers) the stage's best
// clear time, or if no record exists yet. Returns whether the record was
// stored.
func (s *Store) Submit(rec Record) (bool, error) {
	best, ok, err := s.Best(rec.Stage)
	if err != nil {
		return false, err
	}
	if ok && rec.ClearTime >= best.ClearTime {
		return false, nil
	}

	_, err = s.conn.Exec(`
		INSERT INTO records (stage, clear_time, shot_count)
		VALUES (?, ?, ?)
		ON CONFLICT(stage) DO UPDATE SET
			clear_time = excluded.clear_time,
			shot_count = excluded.shot_count,
			updated_at = CURRENT_TIMESTAMP`,
		rec.Stage, rec.ClearTime, rec.ShotCount,
	)
	if err != nil {
		return false, fmt.Errorf("storing record for stage %d: %w", rec.Stage, err)
	}
	return true, nil
}
