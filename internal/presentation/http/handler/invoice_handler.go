package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	docFilter, ok := documentFilter(c, filter.DocumentFilterRequest)
	if !ok {
		return
	}
	params := &repository.InvoiceFilterParams{DocumentFilterParams: docFilter}

	var err error
	if params.ValidationStatus, err = optionalEnum[enum.ValidationStatus](filter.ValidationStatus); err != nil {
		response.BadRequest(c, "Invalid validation_status")
		return
	}
	if params.PaymentStatus, err = optionalEnum[enum.PaymentStatus](filter.PaymentStatus); err != nil {
		response.BadRequest(c, "Invalid payment_status")
		return
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating a draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		ContactID: req.ContactID,
		Date:      req.Date.Ptr(),
		DueDate:   req.DueDate.Ptr(),
		Currency:  req.Currency,
		Notes:     req.Notes,
		Items:     itemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles changing the header of a draft invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var req request.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &service.UpdateInvoiceInput{
		ContactID: req.ContactID,
		Date:      req.Date.Ptr(),
		DueDate:   req.DueDate.Ptr(),
		Currency:  req.Currency,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// AddItem handles appending a line to an invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.AddItem(c.Request.Context(), id, itemInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", invoice)
}

// UpdateItem handles editing one line of an invoice
func (h *InvoiceHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
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

	invoice, err := h.invoiceService.UpdateItem(c.Request.Context(), id, index, itemInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", invoice)
}

// RemoveItem handles deleting one line of an invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RemoveItem(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", invoice)
}

// Validate handles locking a draft invoice
func (h *InvoiceHandler) Validate(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.ValidateInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice validated successfully", invoice)
}

// Revert handles returning a validated invoice to draft
func (h *InvoiceHandler) Revert(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RevertInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice reverted to draft", invoice)
}

// SetPayment handles marking an invoice paid or unpaid
func (h *InvoiceHandler) SetPayment(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := parseEnum[enum.PaymentStatus](req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid payment status")
		return
	}

	invoice, err := h.invoiceService.SetPaymentStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment status updated successfully", invoice)
}
