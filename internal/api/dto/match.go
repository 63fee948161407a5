package dto

import "github.com/attachmatch/attachment-match-backend/internal/domain/matcher"

// MatchAttachmentRequest asks for the best attachment for one transaction.
type MatchAttachmentRequest struct {
	Transaction Transaction  `json:"transaction"`
	Attachments []Attachment `json:"attachments"`
}

// MatchTransactionRequest asks for the best transaction for one attachment.
type MatchTransactionRequest struct {
	Attachment   Attachment    `json:"attachment"`
	Transactions []Transaction `json:"transactions"`
}

// MatchResponse reports a match decision. Matched false means the query
// record has no counterpart above the confidence threshold; that is a
// normal outcome, not an error.
type MatchResponse struct {
	Matched       bool   `json:"matched"`
	Basis         string `json:"basis,omitempty"`
	Score         int    `json:"score,omitempty"`
	AttachmentID  string `json:"attachment_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// NewMatchResponse maps a matcher result (possibly nil) onto the wire form.
func NewMatchResponse(result *matcher.MatchResult) MatchResponse {
	if result == nil {
		return MatchResponse{Matched: false}
	}
	resp := MatchResponse{
		Matched: true,
		Basis:   string(result.Basis),
		Score:   result.Score,
	}
	if result.Attachment != nil {
		resp.AttachmentID = result.Attachment.ID
	}
	if result.Transaction != nil {
		resp.TransactionID = result.Transaction.ID
	}
	return resp
}
