package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return conn(ctx, r.db).Omit("Contact").Create(quote).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Preload("Contact").
		Preload("Items", itemsByPosition).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", itemsByPosition).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

// GetByApprovalToken is not company scoped; the token alone identifies the quote.
func (r *quoteRepository) GetByApprovalToken(ctx context.Context, token uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).
		Preload("Contact").
		Preload("Items", itemsByPosition).
		First(&quote, "approval_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Save(ctx context.Context, quote *entity.Quote) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		// the conversion link is only ever written by LinkInvoice
		if err := tx.Omit(clause.Associations, "ConvertedInvoiceID", "ConvertedAt").Save(quote).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", quote.ID).Delete(&entity.QuoteItem{}).Error; err != nil {
			return err
		}
		if len(quote.Items) == 0 {
			return nil
		}
		for i := range quote.Items {
			quote.Items[i].QuoteID = quote.ID
			quote.Items[i].Position = i
		}
		return tx.Create(&quote.Items).Error
	})
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&entity.QuoteItem{}).Error; err != nil {
			return err
		}
		return tx.Scopes(CompanyScope(ctx)).Delete(&entity.Quote{}, "id = ?", id).Error
	})
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote

	query := conn(ctx, r.db).Model(&entity.Quote{}).Scopes(CompanyScope(ctx))
	query = applyDocumentFilters(query, &params.DocumentFilterParams, "number", "date")

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Approval != nil {
		query = query.Where("approval = ?", *params.Approval)
	}
	if params.Converted != nil {
		if *params.Converted {
			query = query.Where("converted_invoice_id IS NOT NULL")
		} else {
			query = query.Where("converted_invoice_id IS NULL")
		}
	}

	total, err := paginate(query.Preload("Contact"), params.Pagination, orderClause(params.SortBy, params.SortOrder), &quotes)
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

func (r *quoteRepository) LinkInvoice(ctx context.Context, quoteID, invoiceID uuid.UUID, at time.Time) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Quote{}).
		Scopes(CompanyScope(ctx)).
		Where("id = ? AND converted_invoice_id IS NULL", quoteID).
		UpdateColumns(map[string]interface{}{
			"converted_invoice_id": invoiceID,
			"converted_at":         at,
		})

	if result.Error != nil {
		return false, result.Error
	}

	// No rows means another conversion already set the link
	return result.RowsAffected > 0, nil
}
