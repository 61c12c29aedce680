package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// TrackingHandler handles shipment tracking HTTP requests
type TrackingHandler struct {
	trackingService   *service.TrackingService
	conversionService *service.ConversionService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingService *service.TrackingService, conversionService *service.ConversionService) *TrackingHandler {
	return &TrackingHandler{
		trackingService:   trackingService,
		conversionService: conversionService,
	}
}

// List handles listing shipments
func (h *TrackingHandler) List(c *gin.Context) {
	var filter request.TrackingFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	docFilter, ok := documentFilter(c, filter.DocumentFilterRequest)
	if !ok {
		return
	}
	params := &repository.TrackingFilterParams{
		DocumentFilterParams: docFilter,
		Invoiced:             filter.Invoiced,
	}

	var err error
	if params.Stage, err = optionalEnum[enum.TrackingStage](filter.Stage); err != nil {
		response.BadRequest(c, "Invalid stage")
		return
	}

	result, err := h.trackingService.ListTrackings(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Trackings retrieved successfully", result)
}

// Create handles registering a shipment
func (h *TrackingHandler) Create(c *gin.Context) {
	var req request.CreateTrackingRequest
	if !bindJSON(c, &req) {
		return
	}

	tracking, err := h.trackingService.CreateTracking(c.Request.Context(), &service.CreateTrackingInput{
		ContactID:   req.ContactID,
		ProductID:   req.ProductID,
		Weight:      req.Weight,
		Origin:      req.Origin,
		Destination: req.Destination,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tracking created successfully", tracking)
}

// Get handles getting a shipment by ID
func (h *TrackingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "tracking")
	if !ok {
		return
	}

	tracking, err := h.trackingService.GetTracking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tracking retrieved successfully", tracking)
}

// Update handles changing a shipment that has not been invoiced
func (h *TrackingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "tracking")
	if !ok {
		return
	}

	var req request.UpdateTrackingRequest
	if !bindJSON(c, &req) {
		return
	}

	tracking, err := h.trackingService.UpdateTracking(c.Request.Context(), id, &service.UpdateTrackingInput{
		ContactID:    req.ContactID,
		ProductID:    req.ProductID,
		Weight:       req.Weight,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Notes:        req.Notes,
		ClearProduct: req.ClearProduct,
		ClearWeight:  req.ClearWeight,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tracking updated successfully", tracking)
}

// Advance handles moving a shipment to its next stage
func (h *TrackingHandler) Advance(c *gin.Context) {
	id, ok := parseID(c, "id", "tracking")
	if !ok {
		return
	}

	var req request.AdvanceRequest
	if !bindJSON(c, &req) {
		return
	}
	stage, err := enum.ParseTrackingStage(req.Stage)
	if err != nil {
		response.BadRequest(c, "Invalid stage")
		return
	}

	tracking, err := h.trackingService.Advance(c.Request.Context(), id, stage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tracking advanced to "+stage.String(), tracking)
}

// Invoice handles billing a shipment
func (h *TrackingHandler) Invoice(c *gin.Context) {
	id, ok := parseID(c, "id", "tracking")
	if !ok {
		return
	}

	invoice, err := h.conversionService.ConvertTrackingToInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tracking invoiced successfully", invoice)
}
