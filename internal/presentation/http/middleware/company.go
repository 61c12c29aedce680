package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/dto/response"
)

// CompanyMiddleware checks that the company named by the token still exists
func CompanyMiddleware(companyRepo repository.CompanyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := GetCompanyID(c)
		if companyID == uuid.Nil {
			response.BadRequest(c, "Company context required")
			c.Abort()
			return
		}

		company, err := companyRepo.GetByID(c.Request.Context(), companyID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if company == nil {
			response.Forbidden(c, "Access denied to this company")
			c.Abort()
			return
		}

		c.Set("company", company)
		c.Next()
	}
}

// GetCompanyID retrieves the company ID from gin context
func GetCompanyID(c *gin.Context) uuid.UUID {
	companyID, exists := c.Get("company_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := companyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
