package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/ledger"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/sangkips/ledger-api/internal/application/service")

// ConversionService turns quotes and shipments into invoices. Each source converts at most once.
type ConversionService struct {
	quoteRepo    repository.QuoteRepository
	trackingRepo repository.TrackingRepository
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	catalogRepo  repository.CatalogRepository
	transactor   repository.Transactor
	numbering    *NumberingService
	locker       Locker
	now          func() time.Time
}

// NewConversionService creates a new conversion service. A nil locker disables cross-instance locking.
func NewConversionService(
	quoteRepo repository.QuoteRepository,
	trackingRepo repository.TrackingRepository,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	catalogRepo repository.CatalogRepository,
	transactor repository.Transactor,
	numbering *NumberingService,
	locker Locker,
) *ConversionService {
	return &ConversionService{
		quoteRepo:    quoteRepo,
		trackingRepo: trackingRepo,
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		catalogRepo:  catalogRepo,
		transactor:   transactor,
		numbering:    numbering,
		locker:       locker,
		now:          time.Now,
	}
}

// ConvertQuoteToInvoice creates a draft invoice carrying the quote's contact and lines and
// links the quote to it. The link is claimed with a conditional write before the invoice is
// numbered and stored, all in one transaction.
func (s *ConversionService) ConvertQuoteToInvoice(ctx context.Context, quoteID uuid.UUID) (invoice *entity.Invoice, err error) {
	ctx, span := tracer.Start(ctx, "ConversionService.ConvertQuoteToInvoice",
		trace.WithAttributes(attribute.String("quote.id", quoteID.String())))
	defer func() { endSpan(span, err) }()

	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx, "quote:"+quoteID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.now()
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		quote, err := s.quoteRepo.GetForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if quote == nil {
			return apperror.NewNotFoundError("Quote")
		}
		if quote.IsConverted() {
			return apperror.ErrAlreadyConverted
		}

		source := quote.ID
		invoice = &entity.Invoice{
			ID:               uuid.New(),
			CompanyID:        companyID,
			ContactID:        quote.ContactID,
			Date:             now,
			Currency:         quote.Currency,
			Notes:            quote.Notes,
			ValidationStatus: enum.ValidationStatusDraft,
			PaymentStatus:    enum.PaymentStatusUnpaid,
			QuoteID:          &source,
		}
		for _, line := range quote.Lines() {
			invoice.AppendLine(*line)
		}
		if err := ledger.Recompute(invoice); err != nil {
			return err
		}

		linked, err := s.quoteRepo.LinkInvoice(ctx, quote.ID, invoice.ID, now)
		if err != nil {
			return err
		}
		if !linked {
			return apperror.ErrAlreadyConverted
		}
		return s.issue(ctx, invoice)
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			config.LogError(config.GetLogger(), "ConversionService", "ConvertQuoteToInvoice", "transaction", quoteID, err)
		}
		return nil, err
	}

	config.GetLogger().WithFields(logrus.Fields{
		"quote_id":   quoteID,
		"invoice_id": invoice.ID,
		"number":     invoice.Number,
	}).Info("Quote converted to invoice")

	return s.loadInvoice(ctx, invoice.ID)
}

// ConvertTrackingToInvoice bills a shipment with one line priced at product price times weight
func (s *ConversionService) ConvertTrackingToInvoice(ctx context.Context, trackingID uuid.UUID) (invoice *entity.Invoice, err error) {
	ctx, span := tracer.Start(ctx, "ConversionService.ConvertTrackingToInvoice",
		trace.WithAttributes(attribute.String("tracking.id", trackingID.String())))
	defer func() { endSpan(span, err) }()

	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx, "tracking:"+trackingID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.now()
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tracking, err := s.trackingRepo.GetForUpdate(ctx, trackingID)
		if err != nil {
			return err
		}
		if tracking == nil {
			return apperror.NewNotFoundError("Tracking")
		}
		if tracking.IsInvoiced() {
			return apperror.ErrAlreadyInvoiced
		}
		if tracking.ProductID == nil {
			return apperror.ErrMissingProduct
		}
		if tracking.Weight == nil || tracking.Weight.IsZero() {
			return apperror.ErrMissingWeight
		}

		product, err := s.catalogRepo.GetProduct(ctx, *tracking.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		currency, err := currencyOr(ctx, s.companyRepo, companyID, "")
		if err != nil {
			return err
		}

		source := tracking.ID
		invoice = &entity.Invoice{
			ID:               uuid.New(),
			CompanyID:        companyID,
			ContactID:        tracking.ContactID,
			Date:             now,
			Currency:         currency,
			ValidationStatus: enum.ValidationStatusDraft,
			PaymentStatus:    enum.PaymentStatusUnpaid,
			TrackingID:       &source,
		}

		description := product.Name + " (" + tracking.Reference + ")"
		weight := *tracking.Weight
		zero := decimal.Zero
		if _, err := ledger.AddItem(invoice, ledger.LinePatch{
			Description: &description,
			Quantity:    &weight,
			TaxRate:     &zero,
			ProductID:   &product.ID,
		}, ledger.SnapshotOf(product)); err != nil {
			return err
		}

		linked, err := s.trackingRepo.LinkInvoice(ctx, tracking.ID, invoice.ID, now)
		if err != nil {
			return err
		}
		if !linked {
			return apperror.ErrAlreadyInvoiced
		}
		return s.issue(ctx, invoice)
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			config.LogError(config.GetLogger(), "ConversionService", "ConvertTrackingToInvoice", "transaction", trackingID, err)
		}
		return nil, err
	}

	config.GetLogger().WithFields(logrus.Fields{
		"tracking_id": trackingID,
		"invoice_id":  invoice.ID,
		"number":      invoice.Number,
	}).Info("Tracking converted to invoice")

	return s.loadInvoice(ctx, invoice.ID)
}

// issue numbers and stores a freshly built invoice
func (s *ConversionService) issue(ctx context.Context, invoice *entity.Invoice) error {
	number, err := s.numbering.NextNumber(ctx, invoice.CompanyID, enum.DocumentTypeInvoice)
	if err != nil {
		return err
	}
	invoice.Number = number
	return s.invoiceRepo.Create(ctx, invoice)
}

func (s *ConversionService) acquire(ctx context.Context, key string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	return s.locker.Acquire(ctx, key)
}

func (s *ConversionService) loadInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
