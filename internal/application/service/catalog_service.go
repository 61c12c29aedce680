package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/money"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService manages the products and projects that line items refer to
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ProductInput represents the create and update product input. Nil fields are left as they are on update.
type ProductInput struct {
	Name        *string
	Code        *string
	Description *string
	Price       *decimal.Decimal
	TaxRate     *decimal.Decimal
}

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "This field is required"}})
	}

	product := &entity.Product{
		CompanyID:   companyID,
		Name:        strings.TrimSpace(*input.Name),
		Code:        input.Code,
		Description: input.Description,
		Price:       decimal.Zero,
		TaxRate:     decimal.Zero,
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.TaxRate != nil {
		product.TaxRate = *input.TaxRate
	}
	if err := money.ValidateInputs(decimal.Zero, product.Price, product.TaxRate); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.catalogRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product. Lines that already reference it keep their own snapshot.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "This field is required"}})
		}
		product.Name = name
	}
	if input.Code != nil {
		product.Code = input.Code
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.TaxRate != nil {
		product.TaxRate = *input.TaxRate
	}
	if err := money.ValidateInputs(decimal.Zero, product.Price, product.TaxRate); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts lists products with pagination
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.catalogRepo.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, p), nil
}

// CreateProject creates a new project
func (s *CatalogService) CreateProject(ctx context.Context, name string, description *string) (*entity.Project, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "This field is required"}})
	}

	project := &entity.Project{CompanyID: companyID, Name: name, Description: description}
	if err := s.catalogRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject retrieves a project by ID
func (s *CatalogService) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.catalogRepo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// ListProjects lists projects with pagination
func (s *CatalogService) ListProjects(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.Project], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	projects, total, err := s.catalogRepo.ListProjects(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(projects, p), nil
}
