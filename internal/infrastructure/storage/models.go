package storage

import "time"

// MatchRun records one execution of the matcher over a dataset.
type MatchRun struct {
	ID          string    `json:"id"` // uuid
	Dataset     string    `json:"dataset"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	TotalCases  int       `json:"total_cases"`
	PassedCases int       `json:"passed_cases"`
	FailedCases int       `json:"failed_cases"`
}

// MatchDecision records the outcome of a single query within a run:
// what was asked, what the matcher decided, and whether that met the
// dataset's expectation.
type MatchDecision struct {
	ID         int64  `json:"id"`
	RunID      string `json:"run_id"`
	CaseName   string `json:"case_name"`
	Side       string `json:"side"` // "transaction" or "attachment"
	QueryID    string `json:"query_id"`
	Matched    bool   `json:"matched"`
	MatchedID  string `json:"matched_id,omitempty"`
	Basis      string `json:"basis,omitempty"` // "reference" or "score"
	Score      int    `json:"score"`
	ExpectedID string `json:"expected_id,omitempty"`
	Passed     bool   `json:"passed"`
}
