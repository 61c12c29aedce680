package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles listing contacts
func (h *ContactHandler) List(c *gin.Context) {
	var filter request.CatalogFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), catalogFilter(filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Contacts retrieved successfully", result)
}

// Create handles creating a contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req request.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), &service.ContactInput{
		Name:    &req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact created successfully", contact)
}

// Get handles getting a contact by ID
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "contact")
	if !ok {
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact retrieved successfully", contact)
}

// Update handles updating a contact
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "contact")
	if !ok {
		return
	}

	var req request.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), id, &service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact updated successfully", contact)
}
