package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// CatalogFilterParams contains filtering parameters for product, project and contact queries
type CatalogFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// CatalogRepository is the read-mostly store of products and projects
type CatalogRepository interface {
	CreateProduct(ctx context.Context, product *entity.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) error
	ListProducts(ctx context.Context, params *CatalogFilterParams) ([]entity.Product, int64, error)

	CreateProject(ctx context.Context, project *entity.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	ListProjects(ctx context.Context, params *CatalogFilterParams) ([]entity.Project, int64, error)
}

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	List(ctx context.Context, params *CatalogFilterParams) ([]entity.Contact, int64, error)
}
