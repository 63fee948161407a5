package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for match runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its decisions in one transaction
func (s *Storage) SaveRun(run *MatchRun, decisions []*MatchDecision) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(`
	INSERT INTO match_runs
	(id, dataset, started_at, completed_at, total_cases, passed_cases, failed_cases)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Dataset,
		run.StartedAt,
		run.CompletedAt,
		run.TotalCases,
		run.PassedCases,
		run.FailedCases,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	for _, d := range decisions {
		_, err = tx.Exec(`
		INSERT INTO match_decisions
		(run_id, case_name, side, query_id, matched, matched_id, basis, score, expected_id, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			d.CaseName,
			d.Side,
			d.QueryID,
			d.Matched,
			d.MatchedID,
			d.Basis,
			d.Score,
			d.ExpectedID,
			d.Passed,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save decision %s: %w", d.CaseName, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID
func (s *Storage) GetRun(runID string) (*MatchRun, error) {
	row := s.db.QueryRow(`
	SELECT id, dataset, started_at, completed_at, total_cases, passed_cases, failed_cases
	FROM match_runs WHERE id = ?
	`, runID)

	var run MatchRun
	err := row.Scan(&run.ID, &run.Dataset, &run.StartedAt, &run.CompletedAt,
		&run.TotalCases, &run.PassedCases, &run.FailedCases)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]*MatchRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
	SELECT id, dataset, started_at, completed_at, total_cases, passed_cases, failed_cases
	FROM match_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*MatchRun
	for rows.Next() {
		var run MatchRun
		if err := rows.Scan(&run.ID, &run.Dataset, &run.StartedAt, &run.CompletedAt,
			&run.TotalCases, &run.PassedCases, &run.FailedCases); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// ListDecisions returns the decisions recorded for a run
func (s *Storage) ListDecisions(runID string) ([]*MatchDecision, error) {
	rows, err := s.db.Query(`
	SELECT id, run_id, case_name, side, query_id, matched, matched_id, basis, score, expected_id, passed
	FROM match_decisions WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions for run %s: %w", runID, err)
	}
	defer rows.Close()

	var decisions []*MatchDecision
	for rows.Next() {
		var d MatchDecision
		if err := rows.Scan(&d.ID, &d.RunID, &d.CaseName, &d.Side, &d.QueryID,
			&d.Matched, &d.MatchedID, &d.Basis, &d.Score, &d.ExpectedID, &d.Passed); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		decisions = append(decisions, &d)
	}
	return decisions, rows.Err()
}
