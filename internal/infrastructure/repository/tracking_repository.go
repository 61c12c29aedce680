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

type trackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *gorm.DB) domainRepo.TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) Create(ctx context.Context, tracking *entity.Tracking) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(tracking).Error
}

func (r *trackingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tracking, error) {
	var tracking entity.Tracking
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Preload("Contact").
		Preload("Product").
		First(&tracking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tracking, err
}

func (r *trackingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Tracking, error) {
	var tracking entity.Tracking
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tracking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tracking, err
}

func (r *trackingRepository) Save(ctx context.Context, tracking *entity.Tracking) error {
	return conn(ctx, r.db).Omit(clause.Associations, "InvoiceID", "InvoicedAt").Save(tracking).Error
}

func (r *trackingRepository) List(ctx context.Context, params *domainRepo.TrackingFilterParams) ([]entity.Tracking, int64, error) {
	var trackings []entity.Tracking

	query := conn(ctx, r.db).Model(&entity.Tracking{}).Scopes(CompanyScope(ctx))
	query = applyDocumentFilters(query, &params.DocumentFilterParams, "reference", "created_at")

	if params.Stage != nil {
		query = query.Where("stage = ?", *params.Stage)
	}
	if params.Invoiced != nil {
		if *params.Invoiced {
			query = query.Where("invoice_id IS NOT NULL")
		} else {
			query = query.Where("invoice_id IS NULL")
		}
	}

	total, err := paginate(query.Preload("Contact"), params.Pagination, orderClause(params.SortBy, params.SortOrder), &trackings)
	if err != nil {
		return nil, 0, err
	}
	return trackings, total, nil
}

func (r *trackingRepository) LinkInvoice(ctx context.Context, trackingID, invoiceID uuid.UUID, at time.Time) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Tracking{}).
		Scopes(CompanyScope(ctx)).
		Where("id = ? AND invoice_id IS NULL", trackingID).
		UpdateColumns(map[string]interface{}{
			"invoice_id":  invoiceID,
			"invoiced_at": at,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
