package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new product and project repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Create(product).Error
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).Scopes(CompanyScope(ctx)).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	return conn(ctx, r.db).Save(product).Error
}

func (r *catalogRepository) ListProducts(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product

	query := conn(ctx, r.db).Model(&entity.Product{}).Scopes(CompanyScope(ctx))
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	total, err := paginate(query, params.Pagination, "name ASC", &products)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *catalogRepository) CreateProject(ctx context.Context, project *entity.Project) error {
	return conn(ctx, r.db).Create(project).Error
}

func (r *catalogRepository) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := conn(ctx, r.db).Scopes(CompanyScope(ctx)).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *catalogRepository) ListProjects(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]entity.Project, int64, error) {
	var projects []entity.Project

	query := conn(ctx, r.db).Model(&entity.Project{}).Scopes(CompanyScope(ctx))
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	total, err := paginate(query, params.Pagination, "name ASC", &projects)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}
