package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) domainRepo.WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) Create(ctx context.Context, workOrder *entity.WorkOrder) error {
	return conn(ctx, r.db).Omit("Contact").Create(workOrder).Error
}

func (r *workOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	var workOrder entity.WorkOrder
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Preload("Contact").
		Preload("Items", itemsByPosition).
		First(&workOrder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &workOrder, err
}

func (r *workOrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.WorkOrder, error) {
	var workOrder entity.WorkOrder
	err := conn(ctx, r.db).
		Scopes(CompanyScope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", itemsByPosition).
		First(&workOrder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &workOrder, err
}

func (r *workOrderRepository) Save(ctx context.Context, workOrder *entity.WorkOrder) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(workOrder).Error; err != nil {
			return err
		}
		if err := tx.Where("work_order_id = ?", workOrder.ID).Delete(&entity.WorkOrderItem{}).Error; err != nil {
			return err
		}
		if len(workOrder.Items) == 0 {
			return nil
		}
		for i := range workOrder.Items {
			workOrder.Items[i].WorkOrderID = workOrder.ID
			workOrder.Items[i].Position = i
		}
		return tx.Create(&workOrder.Items).Error
	})
}

func (r *workOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_order_id = ?", id).Delete(&entity.WorkOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Scopes(CompanyScope(ctx)).Delete(&entity.WorkOrder{}, "id = ?", id).Error
	})
}

func (r *workOrderRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.WorkOrder, int64, error) {
	var workOrders []entity.WorkOrder

	query := conn(ctx, r.db).Model(&entity.WorkOrder{}).Scopes(CompanyScope(ctx))
	query = applyDocumentFilters(query, params, "number", "date")

	// items are needed to derive each work order's status
	query = query.Preload("Contact").Preload("Items", itemsByPosition)
	total, err := paginate(query, params.Pagination, orderClause(params.SortBy, params.SortOrder), &workOrders)
	if err != nil {
		return nil, 0, err
	}
	return workOrders, total, nil
}
