package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles the current company and its number sequences
type CompanyHandler struct {
	companyService   *service.CompanyService
	numberingService *service.NumberingService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService, numberingService *service.NumberingService) *CompanyHandler {
	return &CompanyHandler{
		companyService:   companyService,
		numberingService: numberingService,
	}
}

// Get handles getting the company the caller belongs to
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), GetCompanyID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", company)
}

// ListSequences handles listing the company's document counters
func (h *CompanyHandler) ListSequences(c *gin.Context) {
	sequences, err := h.numberingService.ListSequences(c.Request.Context(), GetCompanyID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sequences retrieved successfully", sequences)
}

// UpdateSequence handles overriding the prefix, padding or next number of one counter
func (h *CompanyHandler) UpdateSequence(c *gin.Context) {
	docType, err := enum.ParseDocumentType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, "Invalid document type")
		return
	}

	var req request.UpdateSequenceRequest
	if !bindJSON(c, &req) {
		return
	}

	seq, err := h.numberingService.UpdateSequence(c.Request.Context(), GetCompanyID(c), docType, &service.UpdateSequenceInput{
		Prefix:     req.Prefix,
		Padding:    req.Padding,
		NextNumber: req.NextNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sequence updated successfully", seq)
}
