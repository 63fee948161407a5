// Package cli implements the dataset runner: it executes every expected-
// outcome case of a dataset against the matcher and reports pass/fail.
package cli

import (
	"fmt"

	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
	"github.com/attachmatch/attachment-match-backend/internal/loader"
)

// CaseResult is the outcome of one case: what the matcher decided and
// whether that met the dataset's expectation.
type CaseResult struct {
	Case      loader.Case
	Matched   bool
	MatchedID string
	Basis     matcher.Basis
	Score     int
	Passed    bool
}

// RunCases executes every case in the dataset and evaluates the outcomes.
func RunCases(m *matcher.Matcher, ds *loader.Dataset) []CaseResult {
	results := make([]CaseResult, 0, len(ds.Cases))
	for _, c := range ds.Cases {
		var result *matcher.MatchResult
		var matchedID string

		switch c.Side {
		case loader.SideTransaction:
			result = m.BestAttachmentFor(ds.TransactionByID(c.QueryID), ds.Attachments)
			if result != nil {
				matchedID = result.Attachment.ID
			}
		case loader.SideAttachment:
			result = m.BestTransactionFor(ds.AttachmentByID(c.QueryID), ds.Transactions)
			if result != nil {
				matchedID = result.Transaction.ID
			}
		}

		cr := CaseResult{Case: c, Matched: result != nil, MatchedID: matchedID}
		if result != nil {
			cr.Basis = result.Basis
			cr.Score = result.Score
		}
		cr.Passed = evaluate(c, result, matchedID)
		results = append(results, cr)
	}
	return results
}

func evaluate(c loader.Case, result *matcher.MatchResult, matchedID string) bool {
	if !c.ExpectMatch {
		return result == nil
	}
	if result == nil || matchedID != c.MatchID {
		return false
	}
	if c.Basis != "" && matcher.Basis(c.Basis) != result.Basis {
		return false
	}
	if c.Score != nil && *c.Score != result.Score {
		return false
	}
	return true
}

// Detail renders a one-line description of the decision for reporting.
func (r CaseResult) Detail() string {
	if !r.Matched {
		return "no match"
	}
	return fmt.Sprintf("matched %s via %s (score %d)", r.MatchedID, r.Basis, r.Score)
}
