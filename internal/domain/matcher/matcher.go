// Package matcher reconciles bank transactions with supporting documents
// (receipts/invoices) that arrive without a reliable shared key.
//
// Matching is two-phase:
//  1. Reference phase: if any candidate's normalized reference number equals
//     the query's, that candidate wins unconditionally.
//  2. Scoring phase: every candidate gets an additive confidence score from
//     amount equality (+3), date proximity (+2) and name compatibility
//     (0-4); the strictly best candidate is accepted when it reaches the
//     minimum confidence threshold (default 5). Ties go to the first
//     candidate in input order. Known amounts that disagree beyond tolerance
//     rule the pair out regardless of the other factors.
//
// Example usage:
//
//	m, err := matcher.NewMatcher(matcher.DefaultConfig())
//	result := m.BestAttachmentFor(tx, attachments)
//	if result != nil {
//		// Found a match!
//		attachment := result.Attachment
//	}
package matcher

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/attachmatch/attachment-match-backend/internal/domain/names"
)

// Matcher decides, for each transaction, which attachment (if any) most
// plausibly corresponds to it, and vice versa. Safe for concurrent use:
// matching is a pure function over immutable inputs.
type Matcher struct {
	config   Config
	names    *names.Scorer
	ownNames []string
}

// NewMatcher creates a matcher with the given config. Configuration misuse
// (negative tolerances, unreachable threshold) is rejected here, not during
// matching.
func NewMatcher(config Config) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	scorer := names.NewScorer(config.Names)
	own := make([]string, 0, len(config.OwnNames))
	for _, name := range config.OwnNames {
		if n := strings.ToLower(strings.Join(strings.Fields(name), " ")); n != "" {
			own = append(own, n)
		}
	}

	return &Matcher{config: config, names: scorer, ownNames: own}, nil
}

// BestAttachmentFor finds the best matching attachment for a transaction.
// Returns nil if no attachment has an equal reference and none scores at or
// above the confidence threshold. An unmatched transaction is a normal
// outcome, not an error.
func (m *Matcher) BestAttachmentFor(tx *Transaction, attachments []*Attachment) *MatchResult {
	if txRef, ok := m.config.Reference.Normalize(tx.Reference); ok {
		for _, att := range attachments {
			if attRef, ok := m.config.Reference.Normalize(att.Reference); ok && attRef == txRef {
				return &MatchResult{Attachment: att, Basis: BasisReference, Score: m.config.MaxScore()}
			}
		}
	}

	var best *Attachment
	bestScore := 0
	for _, att := range attachments {
		// Strictly-greater keeps the first candidate on equal scores.
		if score := m.Score(tx, att); score > bestScore {
			best = att
			bestScore = score
		}
	}

	if best == nil || bestScore < m.config.MinConfidence {
		return nil
	}
	return &MatchResult{Attachment: best, Basis: BasisScore, Score: bestScore}
}

// BestTransactionFor finds the best matching transaction for an attachment.
// Identical rules to BestAttachmentFor with the roles reversed.
func (m *Matcher) BestTransactionFor(att *Attachment, transactions []*Transaction) *MatchResult {
	if attRef, ok := m.config.Reference.Normalize(att.Reference); ok {
		for _, tx := range transactions {
			if txRef, ok := m.config.Reference.Normalize(tx.Reference); ok && txRef == attRef {
				return &MatchResult{Transaction: tx, Basis: BasisReference, Score: m.config.MaxScore()}
			}
		}
	}

	var best *Transaction
	bestScore := 0
	for _, tx := range transactions {
		if score := m.Score(tx, att); score > bestScore {
			best = tx
			bestScore = score
		}
	}

	if best == nil || bestScore < m.config.MinConfidence {
		return nil
	}
	return &MatchResult{Transaction: best, Basis: BasisScore, Score: bestScore}
}

// Score computes the composite confidence score for a transaction-attachment
// pair. Missing fields contribute zero instead of failing; a pair with no
// comparable fields scores zero and can never reach the threshold. When both
// amounts are known and disagree beyond tolerance, the pair is ruled out
// entirely: a 50-euro receipt is not the document for a 900-euro payment no
// matter how familiar the name looks.
func (m *Matcher) Score(tx *Transaction, att *Attachment) int {
	score := 0
	if tx.Amount != nil && att.Amount != nil {
		if !m.amountsWithinTolerance(*tx.Amount, *att.Amount) {
			return 0
		}
		score += m.config.AmountPoints
	}
	if m.datesCompatible(tx, att) {
		score += m.config.DatePoints
	}
	score += m.nameScore(tx, att)
	return score
}

// amountsWithinTolerance compares amounts by absolute value, since bank
// transactions carry direction (outflows negative) while documents state
// positive totals. Both sides are rounded to two decimals; a difference
// within the configured tolerance still counts to absorb bank rounding and
// fees.
func (m *Matcher) amountsWithinTolerance(txAmount, attAmount decimal.Decimal) bool {
	diff := txAmount.Abs().Round(2).Sub(attAmount.Abs().Round(2)).Abs()
	return diff.Cmp(m.config.AmountTolerance) <= 0
}

// datesCompatible reports whether any populated attachment date is within
// the tolerance window of the transaction date. Documents carry several
// payment-timing dates (invoicing, due, receiving); being close to any of
// them covers early payment, late payment and processing delays.
func (m *Matcher) datesCompatible(tx *Transaction, att *Attachment) bool {
	if tx.Date == nil {
		return false
	}
	for _, attDate := range []*time.Time{att.InvoicingDate, att.DueDate, att.ReceivingDate} {
		if attDate == nil {
			continue
		}
		days := math.Abs(tx.Date.Sub(*attDate).Hours() / 24)
		if days <= float64(m.config.DateToleranceDays) {
			return true
		}
	}
	return false
}

// nameScore checks every usable transaction name against every usable
// attachment name role and keeps the maximum compatibility score.
func (m *Matcher) nameScore(tx *Transaction, att *Attachment) int {
	txNames := m.transactionNames(tx)
	attNames := m.attachmentNames(att)

	best := 0
	for _, a := range txNames {
		for _, b := range attNames {
			if s := m.names.Score(a, b); s > best {
				best = s
			}
		}
	}
	return best
}

// transactionNames returns the transaction's usable counterparty names.
// A name duplicated across the transaction's own roles (payer listed as
// payee) is a data artifact and must not inflate the score; such fields are
// excluded entirely.
func (m *Matcher) transactionNames(tx *Transaction) []string {
	if tx.Payer != "" && tx.Payee != "" && m.names.Normalize(tx.Payer) == m.names.Normalize(tx.Payee) {
		return nil
	}
	var out []string
	if tx.Payer != "" {
		out = append(out, tx.Payer)
	}
	if tx.Payee != "" {
		out = append(out, tx.Payee)
	}
	return out
}

// attachmentNames returns the attachment's usable counterparty names across
// all roles, dropping references to the ledger owner's own organization.
func (m *Matcher) attachmentNames(att *Attachment) []string {
	var out []string
	for _, name := range []string{att.Supplier, att.Recipient, att.Issuer} {
		if name == "" || m.isOwnName(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (m *Matcher) isOwnName(name string) bool {
	lowered := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for _, own := range m.ownNames {
		if strings.Contains(lowered, own) {
			return true
		}
	}
	return false
}
