package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=255"`
	Code        *string          `json:"code" binding:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Code        *string          `json:"code" binding:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
}

// CreateContactRequest represents a contact creation request
type CreateContactRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
	Address *string `json:"address"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=64"`
}

// UpdateContactRequest represents a contact update request
type UpdateContactRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
	Address *string `json:"address"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=64"`
}

// CatalogFilterRequest represents product, project and contact filter parameters
type CatalogFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// UpdateSequenceRequest overrides a document number counter
type UpdateSequenceRequest struct {
	Prefix     *string `json:"prefix" binding:"omitempty,max=20"`
	Padding    *int    `json:"padding" binding:"omitempty,min=0,max=12"`
	NextNumber *int64  `json:"next_number" binding:"omitempty,min=1"`
}
