package response

import (
	"time"

	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PublicQuote is what a client sees on the approval page. Internal ids are left out.
type PublicQuote struct {
	Number            string              `json:"number"`
	Date              time.Time           `json:"date"`
	ValidUntil        *time.Time          `json:"valid_until,omitempty"`
	Currency          string              `json:"currency"`
	Notes             *string             `json:"notes,omitempty"`
	Approval          enum.ApprovalStatus `json:"approval"`
	RejectionReason   *string             `json:"rejection_reason,omitempty"`
	ApprovalDecidedAt *time.Time          `json:"approval_decided_at,omitempty"`
	Converted         bool                `json:"converted"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	TaxAmount         decimal.Decimal     `json:"tax_amount"`
	Total             decimal.Decimal     `json:"total"`
	Items             []PublicQuoteItem   `json:"items"`
}

// PublicQuoteItem is one priced line of a public quote
type PublicQuoteItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// NewPublicQuote builds the public view of a quote
func NewPublicQuote(q *entity.Quote) *PublicQuote {
	items := make([]PublicQuoteItem, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, PublicQuoteItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
			TaxAmount:   it.TaxAmount,
			Total:       it.Total,
		})
	}

	return &PublicQuote{
		Number:            q.Number,
		Date:              q.Date,
		ValidUntil:        q.ValidUntil,
		Currency:          q.Currency,
		Notes:             q.Notes,
		Approval:          q.Approval,
		RejectionReason:   q.RejectionReason,
		ApprovalDecidedAt: q.ApprovalDecidedAt,
		Converted:         q.IsConverted(),
		Subtotal:          q.Subtotal,
		TaxAmount:         q.TaxAmount,
		Total:             q.Total,
		Items:             items,
	}
}

// ApprovalLink is returned to staff so they can share a quote with the client
type ApprovalLink struct {
	Token string `json:"token"`
	Path  string `json:"path"`
}
