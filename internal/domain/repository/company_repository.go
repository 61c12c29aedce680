package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
)

// CompanyRepository defines the interface for company and number sequence operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)

	ListSequences(ctx context.Context, companyID uuid.UUID) ([]entity.NumberSequence, error)
	// EnsureSequence creates the sequence row from defaults unless one already exists
	EnsureSequence(ctx context.Context, defaults *entity.NumberSequence) error
	// NextSequence locks the counter row, returns its state before the increment and
	// stores next_number + 1. The row must exist.
	NextSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (*entity.NumberSequence, error)
	UpdateSequence(ctx context.Context, seq *entity.NumberSequence) error
	GetSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (*entity.NumberSequence, error)
}
