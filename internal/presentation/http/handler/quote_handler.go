package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService      *service.QuoteService
	conversionService *service.ConversionService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, conversionService *service.ConversionService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:      quoteService,
		conversionService: conversionService,
	}
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	var filter request.QuoteFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	docFilter, ok := documentFilter(c, filter.DocumentFilterRequest)
	if !ok {
		return
	}
	params := &repository.QuoteFilterParams{
		DocumentFilterParams: docFilter,
		Converted:            filter.Converted,
	}

	var err error
	if params.Status, err = optionalEnum[enum.QuoteStatus](filter.Status); err != nil {
		response.BadRequest(c, "Invalid status")
		return
	}
	if params.Approval, err = optionalEnum[enum.ApprovalStatus](filter.Approval); err != nil {
		response.BadRequest(c, "Invalid approval")
		return
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Create handles creating a quote
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.CreateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		ContactID:  req.ContactID,
		Date:       req.Date.Ptr(),
		ValidUntil: req.ValidUntil.Ptr(),
		Currency:   req.Currency,
		Notes:      req.Notes,
		Items:      itemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Get handles getting a quote by ID
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Update handles changing the header of an unconverted quote
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	var req request.UpdateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, &service.UpdateQuoteInput{
		ContactID:  req.ContactID,
		Date:       req.Date.Ptr(),
		ValidUntil: req.ValidUntil.Ptr(),
		Currency:   req.Currency,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// Delete handles deleting an unconverted quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote deleted successfully", nil)
}

// AddItem handles appending a line to a quote
func (h *QuoteHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.AddItem(c.Request.Context(), id, itemInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", quote)
}

// UpdateItem handles editing one line of a quote
func (h *QuoteHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
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

	quote, err := h.quoteService.UpdateItem(c.Request.Context(), id, index, itemInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", quote)
}

// RemoveItem handles deleting one line of a quote
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.RemoveItem(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", quote)
}

// SetStatus handles flipping a quote between QUOTE and ORDER
func (h *QuoteHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	var req request.QuoteStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := parseEnum[enum.QuoteStatus](req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid quote status")
		return
	}

	quote, err := h.quoteService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// ApprovalLink returns the public token staff send to the client
func (h *QuoteHandler) ApprovalLink(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	token := quote.ApprovalToken.String()
	response.OK(c, "Approval link retrieved successfully", &response.ApprovalLink{
		Token: token,
		Path:  "/api/v1/public/quotes/" + token,
	})
}

// Convert handles turning a quote into a draft invoice
func (h *QuoteHandler) Convert(c *gin.Context) {
	id, ok := parseID(c, "id", "quote")
	if !ok {
		return
	}

	invoice, err := h.conversionService.ConvertQuoteToInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted to invoice successfully", invoice)
}

// PublicQuoteHandler serves the token-guarded approval page. It needs no login.
type PublicQuoteHandler struct {
	quoteService *service.QuoteService
}

// NewPublicQuoteHandler creates a new public quote handler
func NewPublicQuoteHandler(quoteService *service.QuoteService) *PublicQuoteHandler {
	return &PublicQuoteHandler{quoteService: quoteService}
}

// Show handles viewing a quote through its approval token
func (h *PublicQuoteHandler) Show(c *gin.Context) {
	token, ok := parseID(c, "token", "approval token")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetPublicQuote(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", response.NewPublicQuote(quote))
}

// Decide handles the client's approve or reject decision
func (h *PublicQuoteHandler) Decide(c *gin.Context) {
	token, ok := parseID(c, "token", "approval token")
	if !ok {
		return
	}

	var req request.ApprovalRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.quoteService.SetClientApproval(c.Request.Context(), token, enum.ApprovalAction(req.Action), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Decision recorded", response.NewPublicQuote(quote))
}
