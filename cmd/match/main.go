// Command match runs the matcher over a JSON dataset and prints pass/fail
// per expected-outcome case. Exits non-zero when any case fails.
package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/attachmatch/attachment-match-backend/internal/cli"
	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
	"github.com/attachmatch/attachment-match-backend/internal/infrastructure/config"
	"github.com/attachmatch/attachment-match-backend/internal/infrastructure/storage"
	"github.com/attachmatch/attachment-match-backend/internal/loader"
	"github.com/attachmatch/attachment-match-backend/internal/observability"
)

func main() {
	_ = godotenv.Load()
	flags := cli.ParseMatchFlags()

	cfg := config.LoadOrEnv(flags.ConfigPath)
	logger := observability.NewLogger(cfg.Logging)

	matcherCfg, err := cfg.MatcherConfig()
	if err != nil {
		logger.Error("Invalid matching configuration", "error", err)
		os.Exit(1)
	}
	m, err := matcher.NewMatcher(matcherCfg)
	if err != nil {
		logger.Error("Failed to build matcher", "error", err)
		os.Exit(1)
	}

	ds, err := loader.Load(flags.DataDir)
	if err != nil {
		logger.Error("Failed to load dataset", "dir", flags.DataDir, "error", err)
		os.Exit(1)
	}

	startedAt := time.Now()
	results := cli.RunCases(m, ds)
	completedAt := time.Now()

	cli.PrintHeader(flags.DataDir, len(results))
	for _, r := range results {
		cli.PrintCaseResult(r, flags.Verbose)
	}
	passed, failed := cli.PrintSummary(results)

	if flags.DBPath != "" {
		if err := persistRun(flags.DBPath, flags.DataDir, startedAt, completedAt, results, passed, failed); err != nil {
			logger.Error("Failed to persist run", "error", err)
			os.Exit(1)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func persistRun(dbPath, dataset string, startedAt, completedAt time.Time, results []cli.CaseResult, passed, failed int) error {
	store, err := storage.NewStorage(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &storage.MatchRun{
		ID:          uuid.New().String(),
		Dataset:     dataset,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		TotalCases:  len(results),
		PassedCases: passed,
		FailedCases: failed,
	}

	decisions := make([]*storage.MatchDecision, 0, len(results))
	for _, r := range results {
		decisions = append(decisions, &storage.MatchDecision{
			CaseName:   r.Case.Name,
			Side:       r.Case.Side,
			QueryID:    r.Case.QueryID,
			Matched:    r.Matched,
			MatchedID:  r.MatchedID,
			Basis:      string(r.Basis),
			Score:      r.Score,
			ExpectedID: r.Case.MatchID,
			Passed:     r.Passed,
		})
	}

	return store.SaveRun(run, decisions)
}
