// Package loader reads transaction and attachment datasets from JSON files
// into the typed records the matcher consumes.
//
// The loose source records use explicit optional fields: a missing or null
// amount or date stays nil and degrades to zero score contribution instead
// of failing the load. Only unreadable files and malformed JSON are errors.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
)

// Dataset is a fully materialized input collection plus the expected
// outcomes used by the regression runner.
type Dataset struct {
	Transactions []*matcher.Transaction
	Attachments  []*matcher.Attachment
	Cases        []Case

	txByID  map[string]*matcher.Transaction
	attByID map[string]*matcher.Attachment
}

// Case is one expected matching outcome. Side selects the query direction:
// "transaction" asks for the best attachment, "attachment" the reverse.
type Case struct {
	Name        string `json:"name"`
	Side        string `json:"side"`
	QueryID     string `json:"query_id"`
	ExpectMatch bool   `json:"expect_match"`
	MatchID     string `json:"match_id,omitempty"`
	Basis       string `json:"basis,omitempty"`
	Score       *int   `json:"score,omitempty"`
}

// Sides a Case can query from.
const (
	SideTransaction = "transaction"
	SideAttachment  = "attachment"
)

type rawTransaction struct {
	ID        string           `json:"id"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      string           `json:"date"`
	Reference string           `json:"reference"`
	Payer     string           `json:"payer"`
	Payee     string           `json:"payee"`
}

type rawAttachment struct {
	ID            string           `json:"id"`
	Amount        *decimal.Decimal `json:"amount"`
	Reference     string           `json:"reference"`
	Supplier      string           `json:"supplier"`
	Recipient     string           `json:"recipient"`
	Issuer        string           `json:"issuer"`
	InvoicingDate string           `json:"invoicing_date"`
	DueDate       string           `json:"due_date"`
	ReceivingDate string           `json:"receiving_date"`
}

// Load reads transactions.json, attachments.json and cases.json from dir.
// cases.json is optional; the other two are required.
func Load(dir string) (*Dataset, error) {
	var rawTxs []rawTransaction
	if err := readJSON(filepath.Join(dir, "transactions.json"), &rawTxs); err != nil {
		return nil, err
	}

	var rawAtts []rawAttachment
	if err := readJSON(filepath.Join(dir, "attachments.json"), &rawAtts); err != nil {
		return nil, err
	}

	ds := &Dataset{
		txByID:  make(map[string]*matcher.Transaction, len(rawTxs)),
		attByID: make(map[string]*matcher.Attachment, len(rawAtts)),
	}

	for _, raw := range rawTxs {
		tx := &matcher.Transaction{
			ID:        raw.ID,
			Amount:    raw.Amount,
			Date:      parseDate(raw.Date),
			Reference: raw.Reference,
			Payer:     raw.Payer,
			Payee:     raw.Payee,
		}
		ds.Transactions = append(ds.Transactions, tx)
		ds.txByID[tx.ID] = tx
	}

	for _, raw := range rawAtts {
		att := &matcher.Attachment{
			ID:            raw.ID,
			Amount:        raw.Amount,
			Reference:     raw.Reference,
			Supplier:      raw.Supplier,
			Recipient:     raw.Recipient,
			Issuer:        raw.Issuer,
			InvoicingDate: parseDate(raw.InvoicingDate),
			DueDate:       parseDate(raw.DueDate),
			ReceivingDate: parseDate(raw.ReceivingDate),
		}
		ds.Attachments = append(ds.Attachments, att)
		ds.attByID[att.ID] = att
	}

	casesPath := filepath.Join(dir, "cases.json")
	if _, err := os.Stat(casesPath); err == nil {
		if err := readJSON(casesPath, &ds.Cases); err != nil {
			return nil, err
		}
	}

	for _, c := range ds.Cases {
		if err := ds.validateCase(c); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// TransactionByID returns the transaction with the given id, or nil. Works
// on datasets built by hand as well as loaded ones.
func (ds *Dataset) TransactionByID(id string) *matcher.Transaction {
	if tx, ok := ds.txByID[id]; ok {
		return tx
	}
	for _, tx := range ds.Transactions {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}

// AttachmentByID returns the attachment with the given id, or nil.
func (ds *Dataset) AttachmentByID(id string) *matcher.Attachment {
	if att, ok := ds.attByID[id]; ok {
		return att
	}
	for _, att := range ds.Attachments {
		if att.ID == id {
			return att
		}
	}
	return nil
}

func (ds *Dataset) validateCase(c Case) error {
	switch c.Side {
	case SideTransaction:
		if ds.txByID[c.QueryID] == nil {
			return fmt.Errorf("case %s: unknown transaction %q", c.Name, c.QueryID)
		}
		if c.ExpectMatch && ds.attByID[c.MatchID] == nil {
			return fmt.Errorf("case %s: unknown attachment %q", c.Name, c.MatchID)
		}
	case SideAttachment:
		if ds.attByID[c.QueryID] == nil {
			return fmt.Errorf("case %s: unknown attachment %q", c.Name, c.QueryID)
		}
		if c.ExpectMatch && ds.txByID[c.MatchID] == nil {
			return fmt.Errorf("case %s: unknown transaction %q", c.Name, c.MatchID)
		}
	default:
		return fmt.Errorf("case %s: invalid side %q", c.Name, c.Side)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// parseDate parses a calendar date. Unparseable or empty dates are treated
// as absent, not as errors.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
