// Package storage provides SQLite-based persistence for finished run summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// It never stores the state of a running simulation.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished headless or interactive run.
type RunRecord struct {
	ID              string
	Pilot           string
	Seed            int64
	Ticks           int
	BricksDestroyed int
	BricksLeft      int
	Cleared         bool
	Escaped         bool
	MeanSpeed       float64
	MaxSpeed        float64
	CreatedAt       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			pilot TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			bricks_destroyed INTEGER NOT NULL,
			bricks_left INTEGER NOT NULL,
			cleared INTEGER NOT NULL DEFAULT 0,
			escaped INTEGER NOT NULL DEFAULT 0,
			mean_speed REAL NOT NULL DEFAULT 0,
			max_speed REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_pilot ON runs(pilot);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A missing ID is filled with a new UUID and
// a zero CreatedAt with the current time. Returns the run ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, pilot, seed, ticks, bricks_destroyed, bricks_left, cleared, escaped, mean_speed, max_speed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Pilot,
		r.Seed,
		r.Ticks,
		r.BricksDestroyed,
		r.BricksLeft,
		r.Cleared,
		r.Escaped,
		r.MeanSpeed,
		r.MaxSpeed,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, pilot, seed, ticks, bricks_destroyed, bricks_left, cleared, escaped, mean_speed, max_speed, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, seq DESC LIMIT ?`,
		limit,
	)
}

// RunsByPilot retrieves the most recent runs of one pilot, newest first.
func (s *Store) RunsByPilot(pilot string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE pilot = ? ORDER BY created_at DESC, seq DESC LIMIT ?`,
		pilot, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs of the given pilot.
func (s *Store) ClearRuns(pilot string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE pilot = ?", pilot)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt string
		if err := rows.Scan(
			&r.ID,
			&r.Pilot,
			&r.Seed,
			&r.Ticks,
			&r.BricksDestroyed,
			&r.BricksLeft,
			&r.Cleared,
			&r.Escaped,
			&r.MeanSpeed,
			&r.MaxSpeed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = parsed
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// PilotStats contains aggregated statistics for a pilot.
type PilotStats struct {
	Pilot        string
	Runs         int
	Cleared      int
	AvgDestroyed float64
	BestSpeed    float64
}

// AllPilotStats retrieves statistics for every pilot with at least one run.
func (s *Store) AllPilotStats() (map[string]*PilotStats, error) {
	rows, err := s.db.Query(
		`SELECT pilot, COUNT(*), SUM(cleared), AVG(bricks_destroyed), MAX(max_speed)
		 FROM runs
		 GROUP BY pilot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pilot stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PilotStats)
	for rows.Next() {
		var p PilotStats
		if err := rows.Scan(&p.Pilot, &p.Runs, &p.Cleared, &p.AvgDestroyed, &p.BestSpeed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[p.Pilot] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
