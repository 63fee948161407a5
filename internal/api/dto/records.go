// Package dto defines the JSON request/response shapes of the HTTP API and
// their mapping onto the matcher's typed records.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
)

// Transaction is the wire form of a bank transaction.
type Transaction struct {
	ID        string           `json:"id"`
	Amount    *decimal.Decimal `json:"amount"`
	Date      string           `json:"date,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Payer     string           `json:"payer,omitempty"`
	Payee     string           `json:"payee,omitempty"`
}

// Attachment is the wire form of a supporting document.
type Attachment struct {
	ID            string           `json:"id"`
	Amount        *decimal.Decimal `json:"amount"`
	Reference     string           `json:"reference,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	Recipient     string           `json:"recipient,omitempty"`
	Issuer        string           `json:"issuer,omitempty"`
	InvoicingDate string           `json:"invoicing_date,omitempty"`
	DueDate       string           `json:"due_date,omitempty"`
	ReceivingDate string           `json:"receiving_date,omitempty"`
}

// ToRecord converts the wire form into a matcher record. Unparseable dates
// become absent fields, matching the loader's behavior.
func (t Transaction) ToRecord() *matcher.Transaction {
	return &matcher.Transaction{
		ID:        t.ID,
		Amount:    t.Amount,
		Date:      parseDate(t.Date),
		Reference: t.Reference,
		Payer:     t.Payer,
		Payee:     t.Payee,
	}
}

// ToRecord converts the wire form into a matcher record.
func (a Attachment) ToRecord() *matcher.Attachment {
	return &matcher.Attachment{
		ID:            a.ID,
		Amount:        a.Amount,
		Reference:     a.Reference,
		Supplier:      a.Supplier,
		Recipient:     a.Recipient,
		Issuer:        a.Issuer,
		InvoicingDate: parseDate(a.InvoicingDate),
		DueDate:       parseDate(a.DueDate),
		ReceivingDate: parseDate(a.ReceivingDate),
	}
}

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
