package matcher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/attachmatch/attachment-match-backend/internal/domain/names"
	"github.com/attachmatch/attachment-match-backend/internal/domain/reference"
)

// Transaction is a single bank transaction. Optional fields are pointers or
// empty strings; a missing field simply contributes nothing to scoring.
type Transaction struct {
	ID        string
	Amount    *decimal.Decimal // signed: outflows are negative
	Date      *time.Time
	Reference string
	Payer     string
	Payee     string
}

// Attachment is a supporting document (receipt or invoice). Name fields
// cover the roles a document can carry a counterparty under; date fields
// cover the different payment-timing dates a document can state.
type Attachment struct {
	ID        string
	Amount    *decimal.Decimal
	Reference string

	Supplier  string
	Recipient string
	Issuer    string

	InvoicingDate *time.Time
	DueDate       *time.Time
	ReceivingDate *time.Time
}

// Basis records how a match decision was made.
type Basis string

const (
	// BasisReference means the normalized reference numbers were equal.
	BasisReference Basis = "reference"
	// BasisScore means the composite confidence score reached the threshold.
	BasisScore Basis = "score"
)

// MatchResult pairs a query record with its best counterpart. Exactly one of
// Transaction/Attachment is set, depending on the query direction. Score is
// the composite confidence; reference matches carry the maximum score since
// they override score-based ranking.
type MatchResult struct {
	Transaction *Transaction
	Attachment  *Attachment
	Basis       Basis
	Score       int
}

// Config holds matcher configuration. The scoring weights and threshold are
// named values so boundary behavior can be exercised precisely.
type Config struct {
	MinConfidence     int             // minimum composite score to accept a score-based match
	DateToleranceDays int             // maximum day gap still earning date points
	AmountTolerance   decimal.Decimal // absolute tolerance for bank rounding and fees
	AmountPoints      int
	DatePoints        int

	Reference reference.Normalizer
	Names     names.Config

	// OwnNames are the ledger owner's own organization names; attachment
	// name fields matching one are self-references and never scored.
	OwnNames []string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinConfidence:     5,
		DateToleranceDays: 15,
		AmountTolerance:   decimal.NewFromFloat(0.01),
		AmountPoints:      3,
		DatePoints:        2,
		Reference:         reference.Default(),
		Names:             names.DefaultConfig(),
		OwnNames:          []string{"Example Company Oy"},
	}
}

// MaxScore is the highest composite score attainable under this config.
func (c Config) MaxScore() int {
	return c.AmountPoints + c.DatePoints + names.MaxScore
}

// Validate fails fast on configuration misuse instead of degrading silently.
func (c Config) Validate() error {
	if c.AmountTolerance.IsNegative() {
		return fmt.Errorf("amount tolerance must not be negative, got %s", c.AmountTolerance)
	}
	if c.DateToleranceDays < 0 {
		return fmt.Errorf("date tolerance must not be negative, got %d", c.DateToleranceDays)
	}
	if c.AmountPoints < 0 || c.DatePoints < 0 {
		return fmt.Errorf("scoring weights must not be negative (amount=%d date=%d)", c.AmountPoints, c.DatePoints)
	}
	if c.MinConfidence < 0 {
		return fmt.Errorf("confidence threshold must not be negative, got %d", c.MinConfidence)
	}
	if max := c.MaxScore(); c.MinConfidence > max {
		return fmt.Errorf("confidence threshold %d exceeds maximum attainable score %d", c.MinConfidence, max)
	}
	return nil
}
