package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
)

const maxPadding = 12

// NumberingService hands out document numbers per company and document type
type NumberingService struct {
	companyRepo repository.CompanyRepository
	transactor  repository.Transactor
	cfg         *config.NumberingConfig
}

// NewNumberingService creates a new numbering service
func NewNumberingService(companyRepo repository.CompanyRepository, transactor repository.Transactor, cfg *config.NumberingConfig) *NumberingService {
	return &NumberingService{
		companyRepo: companyRepo,
		transactor:  transactor,
		cfg:         cfg,
	}
}

// DefaultSequence builds the starting counter for a company and document type
func (s *NumberingService) DefaultSequence(companyID uuid.UUID, docType enum.DocumentType) *entity.NumberSequence {
	return &entity.NumberSequence{
		CompanyID:    companyID,
		DocumentType: docType,
		Prefix:       s.cfg.Prefixes[docType.String()],
		NextNumber:   1,
		Padding:      s.cfg.Padding,
	}
}

// EnsureSequences creates any missing counter for the company
func (s *NumberingService) EnsureSequences(ctx context.Context, companyID uuid.UUID) error {
	for _, docType := range enum.DocumentTypes {
		if err := s.companyRepo.EnsureSequence(ctx, s.DefaultSequence(companyID, docType)); err != nil {
			return fmt.Errorf("ensure %s sequence: %w", docType, err)
		}
	}
	return nil
}

// NextNumber returns the formatted next number and advances the counter.
// Called inside a document-creating transaction, a rollback also gives the number back.
func (s *NumberingService) NextNumber(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType) (string, error) {
	var number string
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		seq, err := s.companyRepo.NextSequence(ctx, companyID, docType)
		if err != nil {
			return err
		}
		if seq == nil {
			if err := s.companyRepo.EnsureSequence(ctx, s.DefaultSequence(companyID, docType)); err != nil {
				return err
			}
			if seq, err = s.companyRepo.NextSequence(ctx, companyID, docType); err != nil {
				return err
			}
			if seq == nil {
				return fmt.Errorf("number sequence %s for company %s could not be created", docType, companyID)
			}
		}
		number = seq.Format(seq.NextNumber)
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// ListSequences returns every counter of the company
func (s *NumberingService) ListSequences(ctx context.Context, companyID uuid.UUID) ([]entity.NumberSequence, error) {
	if err := s.EnsureSequences(ctx, companyID); err != nil {
		return nil, err
	}
	return s.companyRepo.ListSequences(ctx, companyID)
}

// UpdateSequenceInput represents a manual change to a counter
type UpdateSequenceInput struct {
	Prefix     *string
	Padding    *int
	NextNumber *int64
}

// UpdateSequence applies a manual override. The next issued number is exactly NextNumber.
func (s *NumberingService) UpdateSequence(ctx context.Context, companyID uuid.UUID, docType enum.DocumentType, input *UpdateSequenceInput) (*entity.NumberSequence, error) {
	if !docType.IsValid() {
		return nil, apperror.NewNotFoundError("Number sequence")
	}

	var fieldErrors []apperror.FieldError
	if input.NextNumber != nil && *input.NextNumber < 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "next_number", Message: "must be at least 1"})
	}
	if input.Padding != nil && (*input.Padding < 0 || *input.Padding > maxPadding) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "padding", Message: fmt.Sprintf("must be between 0 and %d", maxPadding)})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	var seq *entity.NumberSequence
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.companyRepo.EnsureSequence(ctx, s.DefaultSequence(companyID, docType)); err != nil {
			return err
		}
		current, err := s.companyRepo.GetSequence(ctx, companyID, docType)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Number sequence")
		}

		if input.Prefix != nil {
			current.Prefix = *input.Prefix
		}
		if input.Padding != nil {
			current.Padding = *input.Padding
		}
		if input.NextNumber != nil {
			current.NextNumber = *input.NextNumber
		}
		if err := s.companyRepo.UpdateSequence(ctx, current); err != nil {
			return err
		}
		seq = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seq, nil
}
