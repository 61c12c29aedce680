package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/lifecycle"
	"github.com/sangkips/ledger-api/internal/domain/money"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// TrackingService handles shipment tracking operations
type TrackingService struct {
	trackingRepo repository.TrackingRepository
	contactRepo  repository.ContactRepository
	catalogRepo  repository.CatalogRepository
	transactor   repository.Transactor
	numbering    *NumberingService
	now          func() time.Time
}

// NewTrackingService creates a new tracking service
func NewTrackingService(
	trackingRepo repository.TrackingRepository,
	contactRepo repository.ContactRepository,
	catalogRepo repository.CatalogRepository,
	transactor repository.Transactor,
	numbering *NumberingService,
) *TrackingService {
	return &TrackingService{
		trackingRepo: trackingRepo,
		contactRepo:  contactRepo,
		catalogRepo:  catalogRepo,
		transactor:   transactor,
		numbering:    numbering,
		now:          time.Now,
	}
}

// CreateTrackingInput represents the input for registering a shipment
type CreateTrackingInput struct {
	ContactID   uuid.UUID
	ProductID   *uuid.UUID
	Weight      *decimal.Decimal
	Origin      *string
	Destination *string
	Notes       *string
}

// UpdateTrackingInput represents a change to an uninvoiced shipment. Nil fields are left as they are.
type UpdateTrackingInput struct {
	ContactID    *uuid.UUID
	ProductID    *uuid.UUID
	Weight       *decimal.Decimal
	Origin       *string
	Destination  *string
	Notes        *string
	ClearProduct bool
	ClearWeight  bool
}

// CreateTracking registers a shipment at REQUESTED with a reference from the tracking sequence
func (s *TrackingService) CreateTracking(ctx context.Context, input *CreateTrackingInput) (*entity.Tracking, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateWeight(input.Weight); err != nil {
		return nil, err
	}

	tracking := &entity.Tracking{ID: uuid.New(), CompanyID: companyID}
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireContact(ctx, s.contactRepo, input.ContactID); err != nil {
			return err
		}
		if err := s.requireProduct(ctx, input.ProductID); err != nil {
			return err
		}

		tracking.ContactID = input.ContactID
		tracking.ProductID = input.ProductID
		tracking.Weight = input.Weight
		tracking.Origin = input.Origin
		tracking.Destination = input.Destination
		tracking.Notes = input.Notes
		lifecycle.StartTracking(tracking, s.now())

		reference, err := s.numbering.NextNumber(ctx, companyID, enum.DocumentTypeTracking)
		if err != nil {
			return err
		}
		tracking.Reference = reference

		return s.trackingRepo.Create(ctx, tracking)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTracking(ctx, tracking.ID)
}

// GetTracking retrieves a shipment by ID
func (s *TrackingService) GetTracking(ctx context.Context, id uuid.UUID) (*entity.Tracking, error) {
	tracking, err := s.trackingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, apperror.NewNotFoundError("Tracking")
	}
	return tracking, nil
}

// ListTrackings lists shipments with pagination
func (s *TrackingService) ListTrackings(ctx context.Context, params *repository.TrackingFilterParams) (*pagination.PaginatedResult[entity.Tracking], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	trackings, total, err := s.trackingRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(trackings, p), nil
}

// UpdateTracking changes the shipment details. An invoiced shipment is frozen.
func (s *TrackingService) UpdateTracking(ctx context.Context, id uuid.UUID, input *UpdateTrackingInput) (*entity.Tracking, error) {
	if err := validateWeight(input.Weight); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(ctx context.Context, tracking *entity.Tracking) error {
		if tracking.IsInvoiced() {
			return apperror.NewDocumentLockedError("Tracking " + tracking.Reference + " has been invoiced")
		}
		if input.ContactID != nil {
			if err := requireContact(ctx, s.contactRepo, *input.ContactID); err != nil {
				return err
			}
			tracking.ContactID = *input.ContactID
		}
		switch {
		case input.ClearProduct:
			tracking.ProductID = nil
			tracking.Product = nil
		case input.ProductID != nil:
			if err := s.requireProduct(ctx, input.ProductID); err != nil {
				return err
			}
			tracking.ProductID = input.ProductID
			tracking.Product = nil
		}
		switch {
		case input.ClearWeight:
			tracking.Weight = nil
		case input.Weight != nil:
			tracking.Weight = input.Weight
		}
		if input.Origin != nil {
			tracking.Origin = input.Origin
		}
		if input.Destination != nil {
			tracking.Destination = input.Destination
		}
		if input.Notes != nil {
			tracking.Notes = input.Notes
		}
		return nil
	})
}

// Advance moves the shipment to the next stage of the pipeline
func (s *TrackingService) Advance(ctx context.Context, id uuid.UUID, target enum.TrackingStage) (*entity.Tracking, error) {
	return s.mutate(ctx, id, func(ctx context.Context, tracking *entity.Tracking) error {
		return lifecycle.AdvanceTracking(tracking, target, s.now())
	})
}

func (s *TrackingService) requireProduct(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	product, err := s.catalogRepo.GetProduct(ctx, *id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return nil
}

func (s *TrackingService) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tracking *entity.Tracking) error) (*entity.Tracking, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		tracking, err := s.trackingRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tracking == nil {
			return apperror.NewNotFoundError("Tracking")
		}
		if err := fn(ctx, tracking); err != nil {
			return err
		}
		return s.trackingRepo.Save(ctx, tracking)
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			config.LogError(config.GetLogger(), "TrackingService", "mutate", "transaction", id, err)
		}
		return nil, err
	}
	return s.GetTracking(ctx, id)
}

func validateWeight(weight *decimal.Decimal) error {
	if weight != nil && weight.IsNegative() {
		return apperror.NewInvalidAmountError("Weight cannot be negative")
	}
	if weight != nil && !money.FitsInput(*weight) {
		return apperror.NewInvalidAmountError("Weight allows at most 4 decimal places and 16 integer digits")
	}
	return nil
}
