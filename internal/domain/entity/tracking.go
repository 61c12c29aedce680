package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tracking is a shipment moving through the six-stage pipeline
type Tracking struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_tracking_company_reference" json:"company_id"`
	ContactID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"contact_id"`
	Reference   string             `gorm:"size:50;not null;uniqueIndex:idx_tracking_company_reference" json:"reference"`
	ProductID   *uuid.UUID         `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Weight      *decimal.Decimal   `gorm:"type:decimal(20,4)" json:"weight,omitempty"`
	Origin      *string            `gorm:"size:255" json:"origin,omitempty"`
	Destination *string            `gorm:"size:255" json:"destination,omitempty"`
	Notes       *string            `gorm:"type:text" json:"notes,omitempty"`
	Stage       enum.TrackingStage `gorm:"not null;default:0" json:"stage"`
	RequestedAt *time.Time         `json:"requested_at,omitempty"`
	ReceivedAt  *time.Time         `json:"received_at,omitempty"`
	PaidAt      *time.Time         `json:"paid_at,omitempty"`
	ShippedAt   *time.Time         `json:"shipped_at,omitempty"`
	InTransitAt *time.Time         `json:"in_transit_at,omitempty"`
	DeliveredAt *time.Time         `json:"delivered_at,omitempty"`
	InvoiceID   *uuid.UUID         `gorm:"type:uuid;uniqueIndex" json:"invoice_id,omitempty"`
	InvoicedAt  *time.Time         `json:"invoiced_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new tracking
func (t *Tracking) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tracking model
func (Tracking) TableName() string {
	return "trackings"
}

// IsInvoiced reports whether the shipment already produced an invoice
func (t *Tracking) IsInvoiced() bool {
	return t.InvoiceID != nil
}

// StageTime returns the timestamp slot for stage
func (t *Tracking) StageTime(stage enum.TrackingStage) **time.Time {
	switch stage {
	case enum.TrackingStageRequested:
		return &t.RequestedAt
	case enum.TrackingStageReceived:
		return &t.ReceivedAt
	case enum.TrackingStagePaid:
		return &t.PaidAt
	case enum.TrackingStageShipped:
		return &t.ShippedAt
	case enum.TrackingStageInTransit:
		return &t.InTransitAt
	case enum.TrackingStageDelivered:
		return &t.DeliveredAt
	}
	return nil
}
