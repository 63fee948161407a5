package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps, making tests fast and isolated.
type MockRepository struct {
	runs      map[string]*MatchRun
	decisions map[string][]*MatchDecision
	nextID    int64

	// Hooks for test assertions
	SaveRunCalled bool
	LastSavedRun  *MatchRun

	// Error injection for testing error paths
	SaveRunErr error
	ListErr    error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs:      make(map[string]*MatchRun),
		decisions: make(map[string][]*MatchDecision),
	}
}

func (m *MockRepository) SaveRun(run *MatchRun, decisions []*MatchDecision) error {
	m.SaveRunCalled = true
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}
	m.LastSavedRun = run
	m.runs[run.ID] = run
	for _, d := range decisions {
		m.nextID++
		d.ID = m.nextID
		d.RunID = run.ID
		m.decisions[run.ID] = append(m.decisions[run.ID], d)
	}
	return nil
}

func (m *MockRepository) GetRun(runID string) (*MatchRun, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.runs[runID], nil
}

func (m *MockRepository) ListRuns(limit int) ([]*MatchRun, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if limit <= 0 {
		limit = 50
	}
	runs := make([]*MatchRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MockRepository) ListDecisions(runID string) ([]*MatchDecision, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.decisions[runID], nil
}

func (m *MockRepository) Close() error {
	return nil
}
