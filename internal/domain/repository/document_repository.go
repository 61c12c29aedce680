package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// DocumentFilterParams contains filtering parameters shared by document list queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ContactID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortOrder  string
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	DocumentFilterParams
	ValidationStatus *enum.ValidationStatus
	PaymentStatus    *enum.PaymentStatus
}

// InvoiceRepository persists invoices as whole aggregates
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetForUpdate loads the invoice with its items and locks its row until the transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// Save writes the header and replaces the item set
	Save(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	CountByQuote(ctx context.Context, quoteID uuid.UUID) (int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	DocumentFilterParams
	Status    *enum.QuoteStatus
	Approval  *enum.ApprovalStatus
	Converted *bool
}

// QuoteRepository persists quotes as whole aggregates
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// GetByApprovalToken resolves a quote for the public approval page, across companies
	GetByApprovalToken(ctx context.Context, token uuid.UUID) (*entity.Quote, error)
	Save(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	// LinkInvoice sets the conversion link only if it is still unset.
	// Returns (false, nil) when another conversion got there first.
	LinkInvoice(ctx context.Context, quoteID, invoiceID uuid.UUID, at time.Time) (bool, error)
}

// WorkOrderRepository persists work orders as whole aggregates
type WorkOrderRepository interface {
	Create(ctx context.Context, workOrder *entity.WorkOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error)
	Save(ctx context.Context, workOrder *entity.WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.WorkOrder, int64, error)
}

// TrackingFilterParams contains filtering parameters for tracking queries
type TrackingFilterParams struct {
	DocumentFilterParams
	Stage    *enum.TrackingStage
	Invoiced *bool
}

// TrackingRepository persists shipments
type TrackingRepository interface {
	Create(ctx context.Context, tracking *entity.Tracking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tracking, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Tracking, error)
	Save(ctx context.Context, tracking *entity.Tracking) error
	List(ctx context.Context, params *TrackingFilterParams) ([]entity.Tracking, int64, error)
	// LinkInvoice sets the invoice link only if it is still unset
	LinkInvoice(ctx context.Context, trackingID, invoiceID uuid.UUID, at time.Time) (bool, error)
}
