package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// WorkOrderHandler handles work order HTTP requests
type WorkOrderHandler struct {
	workOrderService *service.WorkOrderService
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(workOrderService *service.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService}
}

// List handles listing work orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	var filter request.DocumentFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params, ok := documentFilter(c, filter)
	if !ok {
		return
	}

	result, err := h.workOrderService.ListWorkOrders(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Work orders retrieved successfully", result)
}

// Create handles creating a work order
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req request.CreateWorkOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	wo, err := h.workOrderService.CreateWorkOrder(c.Request.Context(), &service.CreateWorkOrderInput{
		ContactID: req.ContactID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Date:      req.Date.Ptr(),
		Currency:  req.Currency,
		Notes:     req.Notes,
		Items:     itemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Work order created successfully", wo)
}

// Get handles getting a work order by ID
func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}

	wo, err := h.workOrderService.GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order retrieved successfully", wo)
}

// Update handles changing a work order header
func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}

	var req request.UpdateWorkOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	wo, err := h.workOrderService.UpdateWorkOrder(c.Request.Context(), id, &service.UpdateWorkOrderInput{
		ContactID: req.ContactID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Date:      req.Date.Ptr(),
		Currency:  req.Currency,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order updated successfully", wo)
}

// Delete handles deleting a work order
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}

	if err := h.workOrderService.DeleteWorkOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order deleted successfully", nil)
}

// AddItem handles appending a task to a work order
func (h *WorkOrderHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}

	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	wo, err := h.workOrderService.AddItem(c.Request.Context(), id, itemInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", wo)
}

// UpdateItem handles editing one task of a work order
func (h *WorkOrderHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	wo, err := h.workOrderService.UpdateItem(c.Request.Context(), id, index, itemInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", wo)
}

// RemoveItem handles deleting one task of a work order
func (h *WorkOrderHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	wo, err := h.workOrderService.RemoveItem(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", wo)
}

// SetProgress handles moving one task between PENDING, IN_PROGRESS and COMPLETED
func (h *WorkOrderHandler) SetProgress(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req request.ProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	progress, err := parseEnum[enum.WorkProgress](req.Progress)
	if err != nil {
		response.BadRequest(c, "Invalid progress")
		return
	}

	wo, err := h.workOrderService.SetItemProgress(c.Request.Context(), id, index, progress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item progress updated successfully", wo)
}

// Finalize handles marking every task of a work order completed
func (h *WorkOrderHandler) Finalize(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}

	wo, err := h.workOrderService.Finalize(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order finalized", wo)
}

// Reopen handles putting every task of a work order back to pending
func (h *WorkOrderHandler) Reopen(c *gin.Context) {
	id, ok := parseID(c, "id", "work order")
	if !ok {
		return
	}

	wo, err := h.workOrderService.Reopen(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order reopened", wo)
}
