package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ledger-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetCompanyID extracts the company ID from the Gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyIDVal, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	companyID, ok := companyIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return companyID
}

// parseID reads a uuid path parameter and answers 400 when it is malformed
func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseIndex reads the zero-based :index of a line item
func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.BadRequest(c, "Invalid item index")
		return 0, false
	}
	return index, true
}

// parseEnum decodes an enum from its upper-case name
func parseEnum[T any, PT interface {
	*T
	json.Unmarshaler
}](name string) (T, error) {
	var v T
	raw, _ := json.Marshal(name)
	err := PT(&v).UnmarshalJSON(raw)
	return v, err
}

// optionalEnum is parseEnum for filters, where an empty value means no filter
func optionalEnum[T any, PT interface {
	*T
	json.Unmarshaler
}](name string) (*T, error) {
	if name == "" {
		return nil, nil
	}
	v, err := parseEnum[T, PT](name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func paginationParams(page, perPage int) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// documentFilter converts shared list filters, answering 400 on a malformed id or date
func documentFilter(c *gin.Context, req request.DocumentFilterRequest) (repository.DocumentFilterParams, bool) {
	params := repository.DocumentFilterParams{
		Pagination: paginationParams(req.Page, req.PerPage),
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	if req.ContactID != "" {
		contactID, err := uuid.Parse(req.ContactID)
		if err != nil {
			response.BadRequest(c, "Invalid contact ID")
			return params, false
		}
		params.ContactID = &contactID
	}

	from, err := request.ParseDate(req.DateFrom)
	if err != nil {
		response.BadRequest(c, "Invalid date_from")
		return params, false
	}
	to, err := request.ParseDate(req.DateTo)
	if err != nil {
		response.BadRequest(c, "Invalid date_to")
		return params, false
	}
	params.DateFrom = from
	params.DateTo = to

	return params, true
}

func catalogFilter(req request.CatalogFilterRequest) *repository.CatalogFilterParams {
	return &repository.CatalogFilterParams{
		Pagination: paginationParams(req.Page, req.PerPage),
		Search:     req.Search,
	}
}

func itemInput(req request.ItemRequest) service.ItemInput {
	return service.ItemInput{
		Description:  req.Description,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		TaxRate:      req.TaxRate,
		ProductID:    req.ProductID,
		ProjectID:    req.ProjectID,
		ClearProduct: req.ClearProduct,
		ClearProject: req.ClearProject,
	}
}

func itemInputs(reqs []request.ItemRequest) []service.ItemInput {
	items := make([]service.ItemInput, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, itemInput(r))
	}
	return items
}
