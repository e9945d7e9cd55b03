// Package storage keeps the history of finished runs for one process.
// Uses the pure-Go modernc.org/sqlite driver on a private in-memory database;
// nothing survives the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Store manages the in-memory SQLite database holding the run history.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single finished run.
type RunEntry struct {
	ID      int64
	Variant string
	Score   int
	Ticks   uint64
	Reason  flappy.EndReason
	EndedAt time.Time
}

// Stats summarizes the runs of one variant.
type Stats struct {
	Runs       int
	Best       int
	Average    float64
	TotalTicks uint64
}

// Open creates an empty in-memory history.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

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

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(variant, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the history.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun implements flappy.Recorder.
func (s *Store) RecordRun(run flappy.RunResult) error {
	_, err := s.SaveRun(run)
	return err
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run flappy.RunResult) (int64, error) {
	endedAt := run.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (variant, score, ticks, reason, ended_at) VALUES (?, ?, ?, ?, ?)",
		run.Variant, run.Score, int64(run.Ticks), string(run.Reason), endedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs of the given variant, or of every variant
// when variant is empty. Ties keep recording order.
func (s *Store) TopRuns(variant string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, score, ticks, reason, ended_at
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all variants.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, score, ticks, reason, ended_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var ticks, endedAt int64
		var reason string
		if err := rows.Scan(&e.ID, &e.Variant, &e.Score, &ticks, &reason, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.Reason = flappy.EndReason(reason)
		e.EndedAt = time.Unix(0, endedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the highest recorded score for the given variant.
// Returns 0 if no runs exist.
func (s *Store) BestScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE variant = ?",
		variant,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats aggregates the runs of the given variant, or of every variant when
// variant is empty.
func (s *Store) Stats(variant string) (Stats, error) {
	var (
		stats Stats
		best  sql.NullInt64
		avg   sql.NullFloat64
		ticks sql.NullInt64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), SUM(ticks)
		 FROM runs
		 WHERE ? = '' OR variant = ?`,
		variant, variant,
	).Scan(&stats.Runs, &best, &avg, &ticks)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	stats.Best = int(best.Int64)
	stats.Average = avg.Float64
	stats.TotalTicks = uint64(ticks.Int64)
	return stats, nil
}

// Clear deletes all runs of the given variant.
func (s *Store) Clear(variant string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
