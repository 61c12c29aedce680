package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/config"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/ledger"
	"github.com/sangkips/ledger-api/internal/domain/lifecycle"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// WorkOrderService handles work order operations
type WorkOrderService struct {
	workOrderRepo repository.WorkOrderRepository
	contactRepo   repository.ContactRepository
	companyRepo   repository.CompanyRepository
	catalogRepo   repository.CatalogRepository
	transactor    repository.Transactor
	numbering     *NumberingService
	lines         lineResolver
	now           func() time.Time
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(
	workOrderRepo repository.WorkOrderRepository,
	contactRepo repository.ContactRepository,
	companyRepo repository.CompanyRepository,
	catalogRepo repository.CatalogRepository,
	transactor repository.Transactor,
	numbering *NumberingService,
) *WorkOrderService {
	return &WorkOrderService{
		workOrderRepo: workOrderRepo,
		contactRepo:   contactRepo,
		companyRepo:   companyRepo,
		catalogRepo:   catalogRepo,
		transactor:    transactor,
		numbering:     numbering,
		lines:         lineResolver{catalog: catalogRepo},
		now:           time.Now,
	}
}

// CreateWorkOrderInput represents the input for creating a work order
type CreateWorkOrderInput struct {
	ContactID uuid.UUID
	ProjectID *uuid.UUID
	Title     string
	Date      *time.Time
	Currency  string
	Notes     *string
	Items     []ItemInput
}

// UpdateWorkOrderInput represents a header change. Nil fields are left as they are.
type UpdateWorkOrderInput struct {
	ContactID *uuid.UUID
	ProjectID *uuid.UUID
	Title     *string
	Date      *time.Time
	Currency  *string
	Notes     *string
}

// CreateWorkOrder creates a work order whose items all start PENDING
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, input *CreateWorkOrderInput) (*entity.WorkOrder, error) {
	companyID, err := requireCompany(ctx)
	if err != nil {
		return nil, err
	}

	wo := &entity.WorkOrder{ID: uuid.New(), CompanyID: companyID}
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireContact(ctx, s.contactRepo, input.ContactID); err != nil {
			return err
		}
		if err := s.requireProject(ctx, input.ProjectID); err != nil {
			return err
		}
		currency, err := currencyOr(ctx, s.companyRepo, companyID, input.Currency)
		if err != nil {
			return err
		}

		wo.ContactID = input.ContactID
		wo.ProjectID = input.ProjectID
		wo.Title = input.Title
		wo.Date = dateOr(input.Date, s.now())
		wo.Currency = currency
		wo.Notes = input.Notes

		if err := s.lines.addItems(ctx, wo, input.Items); err != nil {
			return err
		}

		number, err := s.numbering.NextNumber(ctx, companyID, enum.DocumentTypeWorkOrder)
		if err != nil {
			return err
		}
		wo.Number = number

		return s.workOrderRepo.Create(ctx, wo)
	})
	if err != nil {
		return nil, err
	}

	return s.GetWorkOrder(ctx, wo.ID)
}

// GetWorkOrder retrieves a work order by ID with its derived status
func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	wo, err := s.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	lifecycle.RefreshStatus(wo)
	return wo, nil
}

// ListWorkOrders lists work orders with pagination
func (s *WorkOrderService) ListWorkOrders(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.WorkOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	workOrders, total, err := s.workOrderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range workOrders {
		lifecycle.RefreshStatus(&workOrders[i])
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(workOrders, p), nil
}

// UpdateWorkOrder changes header fields
func (s *WorkOrderService) UpdateWorkOrder(ctx context.Context, id uuid.UUID, input *UpdateWorkOrderInput) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		if input.ContactID != nil {
			if err := requireContact(ctx, s.contactRepo, *input.ContactID); err != nil {
				return err
			}
			wo.ContactID = *input.ContactID
		}
		if input.ProjectID != nil {
			if err := s.requireProject(ctx, input.ProjectID); err != nil {
				return err
			}
			wo.ProjectID = input.ProjectID
		}
		if input.Title != nil {
			wo.Title = *input.Title
		}
		if input.Date != nil {
			wo.Date = *input.Date
		}
		if input.Currency != nil && *input.Currency != "" {
			wo.Currency = *input.Currency
		}
		if input.Notes != nil {
			wo.Notes = input.Notes
		}
		return nil
	})
}

// DeleteWorkOrder removes a work order
func (s *WorkOrderService) DeleteWorkOrder(ctx context.Context, id uuid.UUID) error {
	wo, err := s.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wo == nil {
		return apperror.NewNotFoundError("Work order")
	}
	return s.workOrderRepo.Delete(ctx, id)
}

// AddItem appends a pending line
func (s *WorkOrderService) AddItem(ctx context.Context, id uuid.UUID, input ItemInput) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		return s.lines.addItem(ctx, wo, input)
	})
}

// UpdateItem patches the line at index. Progress is changed through SetItemProgress.
func (s *WorkOrderService) UpdateItem(ctx context.Context, id uuid.UUID, index int, input ItemInput) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		return s.lines.updateItem(ctx, wo, index, input)
	})
}

// RemoveItem deletes the line at index
func (s *WorkOrderService) RemoveItem(ctx context.Context, id uuid.UUID, index int) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		return ledger.RemoveItem(wo, index)
	})
}

// SetItemProgress changes the progress of the item at index
func (s *WorkOrderService) SetItemProgress(ctx context.Context, id uuid.UUID, index int, progress enum.WorkProgress) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		return lifecycle.SetItemProgress(wo, index, progress, s.now())
	})
}

// Finalize completes every item
func (s *WorkOrderService) Finalize(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		lifecycle.Finalize(wo, s.now())
		return nil
	})
}

// Reopen puts every item back to PENDING
func (s *WorkOrderService) Reopen(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	return s.mutate(ctx, id, func(ctx context.Context, wo *entity.WorkOrder) error {
		lifecycle.Reopen(wo)
		return nil
	})
}

func (s *WorkOrderService) requireProject(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	project, err := s.catalogRepo.GetProject(ctx, *id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.NewNotFoundError("Project")
	}
	return nil
}

func (s *WorkOrderService) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, wo *entity.WorkOrder) error) (*entity.WorkOrder, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		wo, err := s.workOrderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if wo == nil {
			return apperror.NewNotFoundError("Work order")
		}
		if err := fn(ctx, wo); err != nil {
			return err
		}
		return s.workOrderRepo.Save(ctx, wo)
	})
	if err != nil {
		if !apperror.IsAppError(err) {
			config.LogError(config.GetLogger(), "WorkOrderService", "mutate", "transaction", id, err)
		}
		return nil, err
	}
	return s.GetWorkOrder(ctx, id)
}
