package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRequest represents a line item in a create, add or update request
type ItemRequest struct {
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Quantity     *decimal.Decimal `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	ProductID    *uuid.UUID       `json:"product_id"`
	ProjectID    *uuid.UUID       `json:"project_id"`
	ClearProduct bool             `json:"clear_product"`
	ClearProject bool             `json:"clear_project"`
}

// DocumentFilterRequest represents the filters every document list accepts
type DocumentFilterRequest struct {
	Search    string `form:"search"`
	ContactID string `form:"contact_id"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=date number reference total created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	ContactID uuid.UUID     `json:"contact_id" binding:"required"`
	Date      *Date         `json:"date"`
	DueDate   *Date         `json:"due_date"`
	Currency  string        `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes     *string       `json:"notes"`
	Items     []ItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateInvoiceRequest represents an invoice header update
type UpdateInvoiceRequest struct {
	ContactID *uuid.UUID `json:"contact_id"`
	Date      *Date      `json:"date"`
	DueDate   *Date      `json:"due_date"`
	Currency  *string    `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes     *string    `json:"notes"`
}

// PaymentRequest sets the payment status of an invoice
type PaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=UNPAID PAID"`
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	DocumentFilterRequest
	ValidationStatus string `form:"validation_status" binding:"omitempty,oneof=DRAFT VALIDATED"`
	PaymentStatus    string `form:"payment_status" binding:"omitempty,oneof=UNPAID PAID"`
}

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	ContactID  uuid.UUID     `json:"contact_id" binding:"required"`
	Date       *Date         `json:"date"`
	ValidUntil *Date         `json:"valid_until"`
	Currency   string        `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes      *string       `json:"notes"`
	Items      []ItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateQuoteRequest represents a quote header update
type UpdateQuoteRequest struct {
	ContactID  *uuid.UUID `json:"contact_id"`
	Date       *Date      `json:"date"`
	ValidUntil *Date      `json:"valid_until"`
	Currency   *string    `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes      *string    `json:"notes"`
}

// QuoteStatusRequest flips a quote between QUOTE and ORDER
type QuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=QUOTE ORDER"`
}

// ApprovalRequest is posted from the public quote page
type ApprovalRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Reason string `json:"reason" binding:"max=1000"`
}

// QuoteFilterRequest represents quote filter parameters
type QuoteFilterRequest struct {
	DocumentFilterRequest
	Status    string `form:"status" binding:"omitempty,oneof=QUOTE ORDER"`
	Approval  string `form:"approval" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Converted *bool  `form:"converted"`
}

// CreateWorkOrderRequest represents a work order creation request
type CreateWorkOrderRequest struct {
	ContactID uuid.UUID     `json:"contact_id" binding:"required"`
	ProjectID *uuid.UUID    `json:"project_id"`
	Title     string        `json:"title" binding:"required,max=255"`
	Date      *Date         `json:"date"`
	Currency  string        `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes     *string       `json:"notes"`
	Items     []ItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateWorkOrderRequest represents a work order header update
type UpdateWorkOrderRequest struct {
	ContactID *uuid.UUID `json:"contact_id"`
	ProjectID *uuid.UUID `json:"project_id"`
	Title     *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Date      *Date      `json:"date"`
	Currency  *string    `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes     *string    `json:"notes"`
}

// ProgressRequest sets the progress of one work order item
type ProgressRequest struct {
	Progress string `json:"progress" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}
