package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"gorm.io/gorm"
)

// Invoice is a billable document with independent validation and payment axes
type Invoice struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID        uuid.UUID             `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoice_company_number" json:"company_id"`
	ContactID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"contact_id"`
	Number           string                `gorm:"size:50;not null;uniqueIndex:idx_invoice_company_number" json:"number"`
	Date             time.Time             `gorm:"type:date;not null" json:"date"`
	DueDate          *time.Time            `gorm:"type:date" json:"due_date,omitempty"`
	Currency         string                `gorm:"size:10;not null" json:"currency"`
	Notes            *string               `gorm:"type:text" json:"notes,omitempty"`
	ValidationStatus enum.ValidationStatus `gorm:"not null;default:0" json:"validation_status"`
	PaymentStatus    enum.PaymentStatus    `gorm:"not null;default:0" json:"payment_status"`
	ValidatedAt      *time.Time            `json:"validated_at,omitempty"`
	PaidAt           *time.Time            `json:"paid_at,omitempty"`
	QuoteID          *uuid.UUID            `gorm:"type:uuid;uniqueIndex" json:"quote_id,omitempty"`
	TrackingID       *uuid.UUID            `gorm:"type:uuid;uniqueIndex" json:"tracking_id,omitempty"`
	Totals           `gorm:"embedded"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Contact *Contact      `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// CheckMutable rejects item and header changes once the invoice is validated
func (i *Invoice) CheckMutable() error {
	if i.ValidationStatus == enum.ValidationStatusValidated {
		return apperror.NewDocumentLockedError("Invoice " + i.Number + " is validated")
	}
	return nil
}

// Lines returns pointers to the priced part of each item, in display order
func (i *Invoice) Lines() []*LineItem {
	lines := make([]*LineItem, len(i.Items))
	for idx := range i.Items {
		lines[idx] = &i.Items[idx].LineItem
	}
	return lines
}

// AppendLine adds a new item at the end of the invoice
func (i *Invoice) AppendLine(line LineItem) {
	i.Items = append(i.Items, InvoiceItem{
		InvoiceID: i.ID,
		Position:  len(i.Items),
		LineItem:  line,
	})
}

// RemoveLine drops the item at index and renumbers the rest
func (i *Invoice) RemoveLine(index int) {
	i.Items = append(i.Items[:index], i.Items[index+1:]...)
	for idx := range i.Items {
		i.Items[idx].Position = idx
	}
}

// SetTotals overwrites the aggregate totals
func (i *Invoice) SetTotals(t Totals) {
	i.Totals = t
}

// InvoiceItem is one line of an invoice
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	LineItem  `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
