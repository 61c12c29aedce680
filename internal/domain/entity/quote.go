package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"gorm.io/gorm"
)

// Quote is a price offer to a customer. Once converted into an invoice it is frozen.
type Quote struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID          uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_quote_company_number" json:"company_id"`
	ContactID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"contact_id"`
	Number             string              `gorm:"size:50;not null;uniqueIndex:idx_quote_company_number" json:"number"`
	Date               time.Time           `gorm:"type:date;not null" json:"date"`
	ValidUntil         *time.Time          `gorm:"type:date" json:"valid_until,omitempty"`
	Currency           string              `gorm:"size:10;not null" json:"currency"`
	Notes              *string             `gorm:"type:text" json:"notes,omitempty"`
	Status             enum.QuoteStatus    `gorm:"not null;default:0" json:"status"`
	Approval           enum.ApprovalStatus `gorm:"not null;default:0" json:"approval"`
	RejectionReason    *string             `gorm:"type:text" json:"rejection_reason,omitempty"`
	ApprovalDecidedAt  *time.Time          `json:"approval_decided_at,omitempty"`
	ApprovalToken      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	ConvertedInvoiceID *uuid.UUID          `gorm:"type:uuid;uniqueIndex" json:"converted_invoice_id,omitempty"`
	ConvertedAt        *time.Time          `json:"converted_at,omitempty"`
	Totals             `gorm:"embedded"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Contact *Contact    `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []QuoteItem `gorm:"foreignKey:QuoteID" json:"items"`
}

// BeforeCreate generates the id and the public approval token
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.ApprovalToken == uuid.Nil {
		q.ApprovalToken = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// IsConverted reports whether the quote already produced an invoice
func (q *Quote) IsConverted() bool {
	return q.ConvertedInvoiceID != nil
}

// CheckMutable rejects every change once the quote has been converted
func (q *Quote) CheckMutable() error {
	if q.IsConverted() {
		return apperror.NewDocumentLockedError("Quote " + q.Number + " has been converted to an invoice")
	}
	return nil
}

// Lines returns pointers to the priced part of each item, in display order
func (q *Quote) Lines() []*LineItem {
	lines := make([]*LineItem, len(q.Items))
	for idx := range q.Items {
		lines[idx] = &q.Items[idx].LineItem
	}
	return lines
}

// AppendLine adds a new item at the end of the quote
func (q *Quote) AppendLine(line LineItem) {
	q.Items = append(q.Items, QuoteItem{
		QuoteID:  q.ID,
		Position: len(q.Items),
		LineItem: line,
	})
}

// RemoveLine drops the item at index and renumbers the rest
func (q *Quote) RemoveLine(index int) {
	q.Items = append(q.Items[:index], q.Items[index+1:]...)
	for idx := range q.Items {
		q.Items[idx].Position = idx
	}
}

// SetTotals overwrites the aggregate totals
func (q *Quote) SetTotals(t Totals) {
	q.Totals = t
}

// QuoteItem is one line of a quote
type QuoteItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID   uuid.UUID `gorm:"type:uuid;not null;index" json:"quote_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	LineItem  `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
