package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CompanyService handles companies and their number sequences
type CompanyService struct {
	companyRepo repository.CompanyRepository
	numbering   *NumberingService
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository, numbering *NumberingService) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, numbering: numbering}
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// EnsureDefaultCompany creates the seed company and its counters on first start.
// Running it again is a no-op.
func (s *CompanyService) EnsureDefaultCompany(ctx context.Context, seed *config.SeedConfig) (*entity.Company, error) {
	slug := utils.Slugify(seed.CompanySlug)
	if slug == "" {
		slug = utils.Slugify(seed.CompanyName)
	}
	if slug == "" {
		return nil, apperror.NewBadRequestError("Seed company needs a name or slug")
	}

	company, err := s.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if company == nil {
		company = &entity.Company{
			Name:     strings.TrimSpace(seed.CompanyName),
			Slug:     slug,
			Currency: seed.Currency,
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return nil, err
		}
		config.GetLogger().WithFields(logrus.Fields{
			"company_id": company.ID,
			"slug":       company.Slug,
		}).Info("Seeded default company")
	}

	if err := s.numbering.EnsureSequences(ctx, company.ID); err != nil {
		return nil, err
	}
	return company, nil
}
