package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := conn(ctx, r.db).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	var company entity.Company
	err := conn(ctx, r.db).First(&company, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) ListSequences(ctx context.Context, companyID uuid.UUID) ([]entity.NumberSequence, error) {
	var sequences []entity.NumberSequence
	err := conn(ctx, r.db).
		Where("company_id = ?", companyID).
		Order("document_type ASC").
		Find(&sequences).Error
	return sequences, err
}

func (r *companyRepository) EnsureSequence(ctx context.Context, defaults *entity.NumberSequence) error {
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "document_type"}},
			DoNothing: true,
		}).
		Create(defaults).Error
}

// NextSequence increments the counter in a single UPDATE ... RETURNING statement.
// The row stays locked until the surrounding transaction ends, so concurrent callers
// for the same company and type are serialised by the database.
func (r *companyRepository) NextSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (*entity.NumberSequence, error) {
	var seq entity.NumberSequence
	result := conn(ctx, r.db).Model(&seq).
		Clauses(clause.Returning{}).
		Where("company_id = ? AND document_type = ?", companyID, docType).
		UpdateColumn("next_number", gorm.Expr("next_number + 1"))

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	// RETURNING gives the incremented row; hand back the number that was issued
	seq.NextNumber--
	return &seq, nil
}

func (r *companyRepository) UpdateSequence(ctx context.Context, seq *entity.NumberSequence) error {
	return conn(ctx, r.db).Model(&entity.NumberSequence{}).
		Where("company_id = ? AND document_type = ?", seq.CompanyID, seq.DocumentType).
		Select("prefix", "padding", "next_number").
		Updates(map[string]interface{}{
			"prefix":      seq.Prefix,
			"padding":     seq.Padding,
			"next_number": seq.NextNumber,
		}).Error
}

func (r *companyRepository) GetSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (*entity.NumberSequence, error) {
	var seq entity.NumberSequence
	err := conn(ctx, r.db).
		First(&seq, "company_id = ? AND document_type = ?", companyID, docType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &seq, err
}
