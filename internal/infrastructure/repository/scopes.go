package repository

import (
	"context"
	"strings"

	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/pagination"
	"gorm.io/gorm"
)

// CompanyScope returns a GORM scope that filters by the company in context.
// It should be applied to every query on company-owned tables.
func CompanyScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		companyID, ok := repository.CompanyFromContext(ctx)
		if !ok {
			// Fail-safe: return no results if company context missing
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}

// sortColumns whitelists the columns list endpoints may order by
var sortColumns = map[string]string{
	"created_at": "created_at",
	"date":       "date",
	"number":     "number",
	"reference":  "reference",
	"name":       "name",
	"total":      "total",
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	if strings.EqualFold(sortOrder, "asc") {
		return column + " ASC"
	}
	return column + " DESC"
}

// applyDocumentFilters adds the filters shared by every document list.
// numberColumn is searched together with notes; dateColumn bounds the date range.
func applyDocumentFilters(query *gorm.DB, params *repository.DocumentFilterParams, numberColumn, dateColumn string) *gorm.DB {
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(numberColumn+" ILIKE ? OR notes ILIKE ?", like, like)
	}
	if params.ContactID != nil {
		query = query.Where("contact_id = ?", *params.ContactID)
	}
	if params.DateFrom != nil {
		query = query.Where(dateColumn+" >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where(dateColumn+" <= ?", *params.DateTo)
	}
	return query
}

// paginate counts the filtered rows and then loads the requested page into dest
func paginate(query *gorm.DB, p *pagination.PaginationParams, order string, dest interface{}) (int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}

	if p == nil {
		p = pagination.DefaultPagination()
	}
	p.Validate()
	err := query.Offset(p.Offset()).Limit(p.PerPage).Order(order).Find(dest).Error
	return total, err
}

func itemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
