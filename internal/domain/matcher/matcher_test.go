package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helpers to build test records

func amount(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(DefaultConfig())
	require.NoError(t, err)
	return m
}

func TestBestAttachmentFor_ReferenceMatch(t *testing.T) {
	// Arrange
	m := newTestMatcher(t)
	tx := &Transaction{
		ID:        "tx1",
		Amount:    amount(-150.00),
		Date:      day(2024, time.March, 1),
		Reference: "RF00 1234",
		Payer:     "Matti",
	}
	attachments := []*Attachment{
		{ID: "att1", Amount: amount(150.00), Reference: "RF1234", InvoicingDate: day(2024, time.March, 10), Supplier: "Matti Meikäläinen Tmi"},
	}

	// Act
	result := m.BestAttachmentFor(tx, attachments)

	// Assert - matched via reference equality, independent of score
	require.NotNil(t, result)
	assert.Equal(t, "att1", result.Attachment.ID)
	assert.Equal(t, BasisReference, result.Basis)
	assert.Equal(t, DefaultConfig().MaxScore(), result.Score)
}

func TestBestAttachmentFor_ReferenceOverridesScore(t *testing.T) {
	// Arrange - the reference holder has a hopeless composite score, the
	// other candidate would win any score-based ranking.
	m := newTestMatcher(t)
	tx := &Transaction{
		ID:        "tx1",
		Amount:    amount(-75.50),
		Date:      day(2024, time.April, 2),
		Reference: "0000 5550 0011 14",
		Payer:     "Lehtinen",
	}
	byScore := &Attachment{ID: "close", Amount: amount(75.50), InvoicingDate: day(2024, time.April, 3), Supplier: "Lehtinen Transport Oy"}
	byRef := &Attachment{ID: "ref", Amount: amount(980.00), Reference: "5550001114", InvoicingDate: day(2023, time.December, 1), Supplier: "Jokinen Logistics"}

	// Act
	result := m.BestAttachmentFor(tx, []*Attachment{byScore, byRef})

	// Assert
	require.NotNil(t, result)
	assert.Equal(t, "ref", result.Attachment.ID)
	assert.Equal(t, BasisReference, result.Basis)
}

func TestBestAttachmentFor_ScoreMatch(t *testing.T) {
	// Arrange
	m := newTestMatcher(t)
	tx := &Transaction{
		ID:     "tx1",
		Amount: amount(-500.00),
		Date:   day(2024, time.January, 10),
		Payer:  "Best Supplies EMEA",
	}
	attachments := []*Attachment{
		{ID: "att1", Amount: amount(500.00), InvoicingDate: day(2024, time.January, 20), Supplier: "Best Supplies Europe"},
	}

	// Act
	result := m.BestAttachmentFor(tx, attachments)

	// Assert - amount +3, date +2, name +4
	require.NotNil(t, result)
	assert.Equal(t, "att1", result.Attachment.ID)
	assert.Equal(t, BasisScore, result.Basis)
	assert.Equal(t, 9, result.Score)
}

func TestBestAttachmentFor_ThresholdBoundary(t *testing.T) {
	m := newTestMatcher(t)

	// Exactly 5 (amount +3, date +2, no names): matched.
	tx := &Transaction{ID: "tx1", Amount: amount(-89.90), Date: day(2024, time.February, 5)}
	atFive := []*Attachment{{ID: "att1", Amount: amount(89.90), InvoicingDate: day(2024, time.February, 19)}}
	result := m.BestAttachmentFor(tx, atFive)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.Score)

	// 4 (amount +3, date out of window, single shared token +1): unmatched.
	tx = &Transaction{ID: "tx2", Amount: amount(-1200.00), Date: day(2024, time.May, 1), Payer: "Koski Consulting"}
	atFour := []*Attachment{{ID: "att2", Amount: amount(1200.00), InvoicingDate: day(2024, time.June, 30), Supplier: "Koski Catering"}}
	assert.Equal(t, 4, m.Score(tx, atFour[0]))
	assert.Nil(t, m.BestAttachmentFor(tx, atFour))
}

func TestBestAttachmentFor_DateOutsideWindow(t *testing.T) {
	// Arrange - 49 day gap and no name overlap leaves only amount points
	m := newTestMatcher(t)
	tx := &Transaction{ID: "tx1", Amount: amount(-210.40), Date: day(2024, time.January, 10), Payer: "Kymppikate"}
	attachments := []*Attachment{
		{ID: "att1", Amount: amount(210.40), InvoicingDate: day(2024, time.March, 1), Supplier: "Rautakauppa Virtanen"},
	}

	// Act
	result := m.BestAttachmentFor(tx, attachments)

	// Assert
	assert.Nil(t, result)
	assert.Equal(t, 3, m.Score(tx, attachments[0]))
}

func TestBestAttachmentFor_TieBreakFirstInOrder(t *testing.T) {
	// Arrange - two candidates with identical top scores
	m := newTestMatcher(t)
	tx := &Transaction{ID: "tx1", Amount: amount(-64.00), Date: day(2024, time.July, 10), Payer: "Jane Smith"}
	first := &Attachment{ID: "first", Amount: amount(64.00), InvoicingDate: day(2024, time.July, 12), Recipient: "Jane Smith"}
	second := &Attachment{ID: "second", Amount: amount(64.00), InvoicingDate: day(2024, time.July, 12), Supplier: "Jane Smith"}

	// Act
	result := m.BestAttachmentFor(tx, []*Attachment{first, second})

	// Assert - deterministic: first candidate in input order wins
	require.NotNil(t, result)
	assert.Equal(t, "first", result.Attachment.ID)

	// Reversing input order flips the winner.
	result = m.BestAttachmentFor(tx, []*Attachment{second, first})
	require.NotNil(t, result)
	assert.Equal(t, "second", result.Attachment.ID)
}

func TestBestAttachmentFor_NoCandidates(t *testing.T) {
	m := newTestMatcher(t)
	tx := &Transaction{ID: "tx1", Amount: amount(-10.00), Date: day(2024, time.July, 10)}

	assert.Nil(t, m.BestAttachmentFor(tx, nil))
}

func TestBestTransactionFor_ReferenceMatch(t *testing.T) {
	// Arrange
	m := newTestMatcher(t)
	att := &Attachment{ID: "att1", Amount: amount(150.00), Reference: "RF1234"}
	transactions := []*Transaction{
		{ID: "tx1", Amount: amount(-999.00), Reference: "9876 543 2103"},
		{ID: "tx2", Amount: amount(-150.00), Reference: "RF00 1234"},
	}

	// Act
	result := m.BestTransactionFor(att, transactions)

	// Assert
	require.NotNil(t, result)
	assert.Equal(t, "tx2", result.Transaction.ID)
	assert.Equal(t, BasisReference, result.Basis)
}

func TestBestTransactionFor_ScoreMatch(t *testing.T) {
	// Arrange
	m := newTestMatcher(t)
	att := &Attachment{ID: "att1", Amount: amount(75.50), InvoicingDate: day(2024, time.April, 3), Supplier: "Lehtinen Transport Oy"}
	transactions := []*Transaction{
		{ID: "far", Amount: amount(-75.50), Date: day(2024, time.January, 1), Payer: "Virtanen"},
		{ID: "near", Amount: amount(-75.50), Date: day(2024, time.April, 2), Payer: "Lehtinen"},
	}

	// Act
	result := m.BestTransactionFor(att, transactions)

	// Assert - amount +3, date +2, name subset +3
	require.NotNil(t, result)
	assert.Equal(t, "near", result.Transaction.ID)
	assert.Equal(t, BasisScore, result.Basis)
	assert.Equal(t, 8, result.Score)
}

func TestBestTransactionFor_Unmatched(t *testing.T) {
	m := newTestMatcher(t)
	att := &Attachment{ID: "att1", Amount: amount(1200.00), InvoicingDate: day(2024, time.June, 30), Supplier: "Koski Catering"}
	transactions := []*Transaction{
		{ID: "tx1", Amount: amount(-1200.00), Date: day(2024, time.May, 1), Payer: "Koski Consulting"},
	}

	assert.Nil(t, m.BestTransactionFor(att, transactions))
}

func TestScore_AmountSignConvention(t *testing.T) {
	m := newTestMatcher(t)

	// An outflow compared against a positive invoice total matches by
	// absolute value.
	tx := &Transaction{Amount: amount(-175.00)}
	att := &Attachment{Amount: amount(175.00)}
	assert.Equal(t, 3, m.Score(tx, att))

	tx = &Transaction{Amount: amount(175.00)}
	assert.Equal(t, 3, m.Score(tx, att))
}

func TestScore_AmountTolerance(t *testing.T) {
	m := newTestMatcher(t)

	// One cent off: within banking tolerance.
	tx := &Transaction{Amount: amount(-89.89)}
	att := &Attachment{Amount: amount(89.90)}
	assert.Equal(t, 3, m.Score(tx, att))

	// Two cents off: beyond tolerance, the pair is ruled out.
	tx = &Transaction{Amount: amount(-200.00)}
	att = &Attachment{Amount: amount(200.02)}
	assert.Equal(t, 0, m.Score(tx, att))
}

func TestScore_ConflictingAmountsDisqualify(t *testing.T) {
	// Arrange - close dates and near-identical names, but the amounts
	// plainly describe different payments.
	m := newTestMatcher(t)
	tx := &Transaction{
		ID:     "tx1",
		Amount: amount(-100.00),
		Date:   day(2024, time.January, 10),
		Payer:  "Best Supplies EMEA",
	}
	att := &Attachment{
		ID:            "att1",
		Amount:        amount(999.99),
		InvoicingDate: day(2024, time.January, 12),
		Supplier:      "Best Supplies Europe",
	}

	// Assert - date and name points never accumulate past the conflict
	assert.Equal(t, 0, m.Score(tx, att))
	assert.Nil(t, m.BestAttachmentFor(tx, []*Attachment{att}))
	assert.Nil(t, m.BestTransactionFor(att, []*Transaction{tx}))
}

func TestScore_DateWindowBoundary(t *testing.T) {
	m := newTestMatcher(t)
	tx := &Transaction{Amount: amount(-10.00), Date: day(2024, time.July, 15)}

	// 15 days: at the boundary, still compatible.
	att := &Attachment{Amount: amount(10.00), DueDate: day(2024, time.July, 30)}
	assert.Equal(t, 5, m.Score(tx, att))

	// 16 days: no partial credit.
	att = &Attachment{Amount: amount(10.00), DueDate: day(2024, time.July, 31)}
	assert.Equal(t, 3, m.Score(tx, att))
}

func TestScore_AnyAttachmentDateRole(t *testing.T) {
	// Arrange - invoicing date is far off but the due date is close
	m := newTestMatcher(t)
	tx := &Transaction{Amount: amount(-10.00), Date: day(2024, time.July, 15)}
	att := &Attachment{
		Amount:        amount(10.00),
		InvoicingDate: day(2024, time.August, 1),
		DueDate:       day(2024, time.July, 20),
	}

	// Assert
	assert.Equal(t, 5, m.Score(tx, att))
}

func TestScore_SelfReferenceContributesZero(t *testing.T) {
	// Arrange - payer duplicated as payee is a data artifact; even a
	// perfectly matching attachment name must not earn points from it.
	m := newTestMatcher(t)
	tx := &Transaction{Payer: "Acme Oy", Payee: "Acme Oy"}
	att := &Attachment{Supplier: "Acme Oy"}

	// Assert
	assert.Equal(t, 0, m.Score(tx, att))
}

func TestScore_DistinctRolesAllChecked(t *testing.T) {
	// Arrange - the best score across all role pairs wins, not the first
	m := newTestMatcher(t)
	tx := &Transaction{Payer: "Unrelated Org", Payee: "Jane Smith"}
	att := &Attachment{Supplier: "Nobody", Recipient: "Irrelevant", Issuer: "Jane Smith"}

	// Assert
	assert.Equal(t, 4, m.Score(tx, att))
}

func TestScore_OwnCompanyNameIgnored(t *testing.T) {
	m := newTestMatcher(t)
	tx := &Transaction{Payer: "Example Company Oy"}
	att := &Attachment{Issuer: "Example Company Oy", Supplier: "Jane Doe Design"}

	// The only score source left is the supplier, which shares nothing.
	assert.Equal(t, 0, m.Score(tx, att))
}

func TestScore_MissingFieldsDegradeGracefully(t *testing.T) {
	m := newTestMatcher(t)

	// Nothing comparable at all.
	assert.Equal(t, 0, m.Score(&Transaction{}, &Attachment{}))

	// Missing amount: the other factors still count.
	tx := &Transaction{Date: day(2024, time.January, 18), Payer: "Best Supplies Europe Oy"}
	att := &Attachment{Amount: amount(500.00), InvoicingDate: day(2024, time.January, 20), Supplier: "Best Supplies Europe"}
	assert.Equal(t, 6, m.Score(tx, att))

	// Missing date on the transaction.
	tx = &Transaction{Amount: amount(-500.00), Payer: "Best Supplies Europe Oy"}
	assert.Equal(t, 7, m.Score(tx, att))
}

func TestNewMatcher_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AmountTolerance = decimal.NewFromFloat(-0.01)
	_, err := NewMatcher(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.DateToleranceDays = -1
	_, err = NewMatcher(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.MinConfidence = cfg.MaxScore() + 1
	_, err = NewMatcher(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.MinConfidence = -1
	_, err = NewMatcher(cfg)
	assert.Error(t, err)
}

func TestNewMatcher_CustomThreshold(t *testing.T) {
	// Arrange - with the threshold raised to 6, the amount+date pair that
	// scores exactly 5 no longer matches.
	cfg := DefaultConfig()
	cfg.MinConfidence = 6
	m, err := NewMatcher(cfg)
	require.NoError(t, err)

	tx := &Transaction{ID: "tx1", Amount: amount(-89.90), Date: day(2024, time.February, 5)}
	attachments := []*Attachment{{ID: "att1", Amount: amount(89.90), InvoicingDate: day(2024, time.February, 19)}}

	// Assert
	assert.Nil(t, m.BestAttachmentFor(tx, attachments))
}
