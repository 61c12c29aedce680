package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles product and project HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles listing products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter request.CatalogFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), catalogFilter(filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// CreateProduct handles creating a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.ProductInput{
		Name:        &req.Name,
		Code:        req.Code,
		Description: req.Description,
		Price:       req.Price,
		TaxRate:     req.TaxRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// GetProduct handles getting a product by ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// UpdateProduct handles updating a product. Lines already on documents keep their prices.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &service.ProductInput{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Price:       req.Price,
		TaxRate:     req.TaxRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// ListProjects handles listing projects
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	var filter request.CatalogFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.catalogService.ListProjects(c.Request.Context(), catalogFilter(filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Projects retrieved successfully", result)
}

// CreateProject handles creating a project
func (h *CatalogHandler) CreateProject(c *gin.Context) {
	var req request.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.catalogService.CreateProject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Project created successfully", project)
}

// GetProject handles getting a project by ID
func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.catalogService.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project retrieved successfully", project)
}
