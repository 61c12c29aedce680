package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/ledger"
	"github.com/sangkips/ledger-api/internal/domain/lifecycle"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	contactRepo repository.ContactRepository
	companyRepo repository.CompanyRepository
	transactor  repository.Transactor
	numbering   *NumberingService
	lines       lineResolver
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	contactRepo repository.ContactRepository,
	companyRepo repository.CompanyRepository,
	catalogRepo repository.CatalogRepository,
	transactor repository.Transactor,
	numbering *NumberingService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		companyRepo: companyRepo,
		transactor:  transactor,
		numbering:   numbering,
		lines:       lineResolver{catalog: catalogRepo},
		now:         time.Now,
	}
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	ContactID uuid.UUID
	Date      *time.Time
	DueDate   *time.Time
	Currency  string
	Notes     *string
	Items     []ItemInput
}

// UpdateInvoiceInput represents a header change. Nil fields are left as they are.
type UpdateInvoiceInput struct {
	ContactID *uuid.UUID
	Date      *time.Time
	DueDate   *time.Time
	Currency  *string
	Notes     *string
}

// CreateInvoice creates a draft, unpaid invoice with its own number
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{ID: uuid.New(), CompanyID: companyID}
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireContact(ctx, s.contactRepo, input.ContactID); err != nil {
			return err
		}
		currency, err := currencyOr(ctx, s.companyRepo, companyID, input.Currency)
		if err != nil {
			return err
		}

		now := s.now()
		invoice.ContactID = input.ContactID
		invoice.Date = dateOr(input.Date, now)
		invoice.DueDate = input.DueDate
		invoice.Currency = currency
		invoice.Notes = input.Notes
		invoice.ValidationStatus = enum.ValidationStatusDraft
		invoice.PaymentStatus = enum.PaymentStatusUnpaid

		if err := s.lines.addItems(ctx, invoice, input.Items); err != nil {
			return err
		}

		number, err := s.numbering.NextNumber(ctx, companyID, enum.DocumentTypeInvoice)
		if err != nil {
			return err
		}
		invoice.Number = number

		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, p), nil
}

// UpdateInvoice changes header fields of a draft invoice
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		if err := invoice.CheckMutable(); err != nil {
			return err
		}
		if input.ContactID != nil {
			if err := requireContact(ctx, s.contactRepo, *input.ContactID); err != nil {
				return err
			}
			invoice.ContactID = *input.ContactID
		}
		if input.Date != nil {
			invoice.Date = *input.Date
		}
		if input.DueDate != nil {
			invoice.DueDate = input.DueDate
		}
		if input.Currency != nil && *input.Currency != "" {
			invoice.Currency = *input.Currency
		}
		if input.Notes != nil {
			invoice.Notes = input.Notes
		}
		return nil
	})
}

// DeleteInvoice removes a draft invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if err := invoice.CheckMutable(); err != nil {
			return err
		}
		return s.invoiceRepo.Delete(ctx, id)
	})
}

// AddItem appends a line to a draft invoice
func (s *InvoiceService) AddItem(ctx context.Context, id uuid.UUID, input ItemInput) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		return s.lines.addItem(ctx, invoice, input)
	})
}

// UpdateItem patches the line at index
func (s *InvoiceService) UpdateItem(ctx context.Context, id uuid.UUID, index int, input ItemInput) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		return s.lines.updateItem(ctx, invoice, index, input)
	})
}

// RemoveItem deletes the line at index
func (s *InvoiceService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		return ledger.RemoveItem(invoice, index)
	})
}

// ValidateInvoice locks the invoice against further edits
func (s *InvoiceService) ValidateInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		return lifecycle.ValidateInvoice(invoice, s.now())
	})
}

// RevertInvoice moves a validated invoice back to draft
func (s *InvoiceService) RevertInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		return lifecycle.RevertInvoice(invoice)
	})
}

// SetPaymentStatus marks the invoice paid or unpaid
func (s *InvoiceService) SetPaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) (*entity.Invoice, error) {
	return s.mutate(ctx, id, func(ctx context.Context, invoice *entity.Invoice) error {
		return lifecycle.SetInvoicePayment(invoice, status, s.now())
	})
}

// mutate reloads the invoice under a row lock, applies fn and saves the aggregate in one transaction,
// so the validation lock is checked against the committed state at write time
func (s *InvoiceService) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, invoice *entity.Invoice) error) (*entity.Invoice, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if err := fn(ctx, invoice); err != nil {
			return err
		}
		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			config.LogError(config.GetLogger(), "InvoiceService", "mutate", "transaction", id, err)
		}
		return nil, err
	}
	return s.GetInvoice(ctx, id)
}
