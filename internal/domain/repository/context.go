package repository

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	// CompanyIDKey is the context key for the company every query is scoped to
	CompanyIDKey ctxKey = "company_id"
	// UserIDKey is the context key for the authenticated user
	UserIDKey ctxKey = "user_id"
)

// WithCompany adds the company ID to context
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID)
}

// CompanyFromContext extracts the company ID from context
func CompanyFromContext(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	return companyID, ok && companyID != uuid.Nil
}

// WithUser adds the user ID to context
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserFromContext extracts the user ID from context
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
