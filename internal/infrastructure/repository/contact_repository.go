package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) domainRepo.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return conn(ctx, r.db).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := conn(ctx, r.db).Scopes(CompanyScope(ctx)).First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return conn(ctx, r.db).Save(contact).Error
}

func (r *contactRepository) List(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]entity.Contact, int64, error) {
	var contacts []entity.Contact

	query := conn(ctx, r.db).Model(&entity.Contact{}).Scopes(CompanyScope(ctx))
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	total, err := paginate(query, params.Pagination, "name ASC", &contacts)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}
