// Package storage provides an SQLite archive of completed simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The archive is write-mostly: session statistics are never rebuilt from it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/woods/internal/session"
)

// Store manages the SQLite database connection for the run archive.
type Store struct {
	db *sql.DB
}

// RunRecord is one archived run.
type RunRecord struct {
	ID         int64
	RunID      string // UUID assigned on save when empty
	Preset     string
	Policy     string
	GridW      int
	GridH      int
	Agents     int
	Turns      int
	Merges     int
	LongestGap int
	Seed       int64
	CreatedAt  time.Time
}

// PolicyStats contains aggregated statistics for one policy.
type PolicyStats struct {
	Policy    string
	Runs      int
	Shortest  int
	Longest   int
	AvgTurns  float64
	LastRunAt time.Time
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL DEFAULT '',
			policy TEXT NOT NULL,
			grid_w INTEGER NOT NULL,
			grid_h INTEGER NOT NULL,
			agents INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			merges INTEGER NOT NULL DEFAULT 0,
			longest_gap INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy);
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

// SaveRun archives a completed run and returns its run ID.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, preset, policy, grid_w, grid_h, agents, turns, merges, longest_gap, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Preset, rec.Policy, rec.GridW, rec.GridH,
		rec.Agents, rec.Turns, rec.Merges, rec.LongestGap, rec.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return rec.RunID, nil
}

// SaveRunResult implements session.ResultSaver.
// Runs stopped by the turn cap are not archived.
func (s *Store) SaveRunResult(res session.RunResult) (string, error) {
	if !res.Completed {
		return "", nil
	}
	return s.SaveRun(RunRecord{
		RunID:      res.RunID,
		Preset:     res.Preset,
		Policy:     res.Policy,
		GridW:      res.Grid.W,
		GridH:      res.Grid.H,
		Agents:     res.Agents,
		Turns:      res.Turns,
		Merges:     res.Merges,
		LongestGap: res.LongestGap,
		Seed:       res.Seed,
	})
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

const runColumns = `id, run_id, preset, policy, grid_w, grid_h, agents, turns, merges, longest_gap, seed, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForPolicy retrieves the shortest runs recorded for a policy.
func (s *Store) RunsForPolicy(policy string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE policy = ?
		 ORDER BY turns ASC, id ASC
		 LIMIT ?`,
		policy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ErrAmbiguousRunID is returned when a run ID prefix matches several runs.
var ErrAmbiguousRunID = errors.New("storage: run ID prefix matches more than one run")

// RunByID retrieves a run by its run ID or a unique prefix of it.
// Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	if runID == "" {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs
		 WHERE substr(run_id, 1, ?) = ?
		 ORDER BY run_id = ? DESC, id
		 LIMIT 2`,
		len(runID), runID, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch {
	case len(runs) == 0:
		return nil, nil
	case runs[0].RunID == runID || len(runs) == 1:
		return &runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousRunID, runID)
	}
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Preset, &r.Policy, &r.GridW, &r.GridH,
			&r.Agents, &r.Turns, &r.Merges, &r.LongestGap, &r.Seed, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// PolicySummary aggregates every archived run of a policy.
// A policy with no runs yields zero counts and -1 for shortest and longest.
func (s *Store) PolicySummary(policy string) (*PolicyStats, error) {
	stats := &PolicyStats{Policy: policy}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(turns), -1), COALESCE(MAX(turns), -1),
		        COALESCE(AVG(turns), 0), MAX(created_at)
		 FROM runs WHERE policy = ?`,
		policy,
	).Scan(&stats.Runs, &stats.Shortest, &stats.Longest, &stats.AvgTurns, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	stats.LastRunAt = parseTime(lastRun)

	return stats, nil
}

// AllPolicySummaries aggregates archived runs for every policy seen.
func (s *Store) AllPolicySummaries() (map[string]*PolicyStats, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), MIN(turns), MAX(turns), AVG(turns), MAX(created_at)
		 FROM runs
		 GROUP BY policy`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get policy stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*PolicyStats)
	for rows.Next() {
		var ps PolicyStats
		var lastRun any
		if err := rows.Scan(&ps.Policy, &ps.Runs, &ps.Shortest, &ps.Longest, &ps.AvgTurns, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastRunAt = parseTime(lastRun)
		out[ps.Policy] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearRuns deletes archived runs for a policy, or every run when policy is empty.
func (s *Store) ClearRuns(policy string) error {
	var err error
	if policy == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE policy = ?", policy)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
