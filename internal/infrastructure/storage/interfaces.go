package storage

// Repository defines the storage interface for match runs.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	// SaveRun persists a completed match run with its per-query decisions
	SaveRun(run *MatchRun, decisions []*MatchDecision) error

	// GetRun retrieves a run by ID
	GetRun(runID string) (*MatchRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]*MatchRun, error)

	// ListDecisions returns the decisions recorded for a run
	ListDecisions(runID string) ([]*MatchDecision, error)

	Close() error
}
