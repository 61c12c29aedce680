package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// WorkOrder is a job sheet. Its overall progress is derived from its items and never stored.
type WorkOrder struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_work_order_company_number" json:"company_id"`
	ContactID uuid.UUID  `gorm:"type:uuid;not null;index" json:"contact_id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Number    string     `gorm:"size:50;not null;uniqueIndex:idx_work_order_company_number" json:"number"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Date      time.Time  `gorm:"type:date;not null" json:"date"`
	Currency  string     `gorm:"size:10;not null" json:"currency"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	Totals    `gorm:"embedded"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Computed field for JSON response
	Status enum.WorkProgress `gorm:"-" json:"status"`

	// Relationships
	Contact *Contact        `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []WorkOrderItem `gorm:"foreignKey:WorkOrderID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new work order
func (w *WorkOrder) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkOrder model
func (WorkOrder) TableName() string {
	return "work_orders"
}

// CheckMutable always succeeds: work orders stay editable whatever their progress
func (w *WorkOrder) CheckMutable() error {
	return nil
}

// Lines returns pointers to the priced part of each item, in display order
func (w *WorkOrder) Lines() []*LineItem {
	lines := make([]*LineItem, len(w.Items))
	for idx := range w.Items {
		lines[idx] = &w.Items[idx].LineItem
	}
	return lines
}

// AppendLine adds a new pending item at the end of the work order
func (w *WorkOrder) AppendLine(line LineItem) {
	w.Items = append(w.Items, WorkOrderItem{
		WorkOrderID: w.ID,
		Position:    len(w.Items),
		Progress:    enum.WorkProgressPending,
		LineItem:    line,
	})
}

// RemoveLine drops the item at index and renumbers the rest
func (w *WorkOrder) RemoveLine(index int) {
	w.Items = append(w.Items[:index], w.Items[index+1:]...)
	for idx := range w.Items {
		w.Items[idx].Position = idx
	}
}

// SetTotals overwrites the aggregate totals
func (w *WorkOrder) SetTotals(t Totals) {
	w.Totals = t
}

// WorkOrderItem is one task line of a work order with its own progress
type WorkOrderItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	WorkOrderID uuid.UUID         `gorm:"type:uuid;not null;index" json:"work_order_id"`
	Position    int               `gorm:"not null;default:0" json:"position"`
	Progress    enum.WorkProgress `gorm:"not null;default:0" json:"progress"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	LineItem    `gorm:"embedded"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new work order item
func (wi *WorkOrderItem) BeforeCreate(tx *gorm.DB) error {
	if wi.ID == uuid.Nil {
		wi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkOrderItem model
func (WorkOrderItem) TableName() string {
	return "work_order_items"
}
