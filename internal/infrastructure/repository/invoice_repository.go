package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Omit("Contact").Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Preload("Contact").
		Preload("Items", itemsByPosition).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", itemsByPosition).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Save(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(invoice).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		if len(invoice.Items) == 0 {
			return nil
		}
		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
			invoice.Items[i].Position = i
		}
		return tx.Create(&invoice.Items).Error
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Scopes(CompanyScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error
	})
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice

	query := conn(ctx, r.db).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx))
	query = applyDocumentFilters(query, &params.DocumentFilterParams, "number", "date")

	if params.ValidationStatus != nil {
		query = query.Where("validation_status = ?", *params.ValidationStatus)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	total, err := paginate(query.Preload("Contact"), params.Pagination, orderClause(params.SortBy, params.SortOrder), &invoices)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) CountByQuote(ctx context.Context, quoteID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Where("quote_id = ?", quoteID).
		Count(&count).Error
	return count, err
}
