package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTrackingRequest registers a shipment
type CreateTrackingRequest struct {
	ContactID   uuid.UUID        `json:"contact_id" binding:"required"`
	ProductID   *uuid.UUID       `json:"product_id"`
	Weight      *decimal.Decimal `json:"weight"`
	Origin      *string          `json:"origin" binding:"omitempty,max=255"`
	Destination *string          `json:"destination" binding:"omitempty,max=255"`
	Notes       *string          `json:"notes"`
}

// UpdateTrackingRequest changes a shipment that has not been invoiced
type UpdateTrackingRequest struct {
	ContactID    *uuid.UUID       `json:"contact_id"`
	ProductID    *uuid.UUID       `json:"product_id"`
	Weight       *decimal.Decimal `json:"weight"`
	Origin       *string          `json:"origin" binding:"omitempty,max=255"`
	Destination  *string          `json:"destination" binding:"omitempty,max=255"`
	Notes        *string          `json:"notes"`
	ClearProduct bool             `json:"clear_product"`
	ClearWeight  bool             `json:"clear_weight"`
}

// AdvanceRequest moves a shipment to its next stage
type AdvanceRequest struct {
	Stage string `json:"stage" binding:"required,oneof=REQUESTED RECEIVED PAID SHIPPED IN_TRANSIT DELIVERED"`
}

// TrackingFilterRequest represents tracking filter parameters
type TrackingFilterRequest struct {
	DocumentFilterRequest
	Stage    string `form:"stage" binding:"omitempty,oneof=REQUESTED RECEIVED PAID SHIPPED IN_TRANSIT DELIVERED"`
	Invoiced *bool  `form:"invoiced"`
}
