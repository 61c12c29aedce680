package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/ledger"
	"github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Locker serialises work on one key across API instances
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// ItemInput represents a line item input. Nil fields keep their current value.
type ItemInput struct {
	Description  *string
	Quantity     *decimal.Decimal
	UnitPrice    *decimal.Decimal
	TaxRate      *decimal.Decimal
	ProductID    *uuid.UUID
	ProjectID    *uuid.UUID
	ClearProduct bool
	ClearProject bool
}

func (in ItemInput) patch() ledger.LinePatch {
	return ledger.LinePatch{
		Description:  in.Description,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TaxRate:      in.TaxRate,
		ProductID:    in.ProductID,
		ProjectID:    in.ProjectID,
		ClearProduct: in.ClearProduct,
		ClearProject: in.ClearProject,
	}
}

// lineResolver looks up the catalog entries an item input refers to
type lineResolver struct {
	catalog repository.CatalogRepository
}

// resolve returns the product snapshot needed when the input changes the line's product,
// and checks that a referenced project exists
func (r lineResolver) resolve(ctx context.Context, in ItemInput, current *entity.LineItem) (*ledger.ProductSnapshot, error) {
	if in.ProjectID != nil {
		project, err := r.catalog.GetProject(ctx, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, apperror.NewNotFoundError("Project")
		}
	}

	patch := in.patch()
	if !patch.ChangesProduct(current) {
		return nil, nil
	}

	product, err := r.catalog.GetProduct(ctx, *in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return ledger.SnapshotOf(product), nil
}

// addItems appends every input to doc in order
func (r lineResolver) addItems(ctx context.Context, doc ledger.Document, items []ItemInput) error {
	for _, in := range items {
		if err := r.addItem(ctx, doc, in); err != nil {
			return err
		}
	}
	return nil
}

func (r lineResolver) addItem(ctx context.Context, doc ledger.Document, in ItemInput) error {
	if err := doc.CheckMutable(); err != nil {
		return err
	}
	product, err := r.resolve(ctx, in, nil)
	if err != nil {
		return err
	}
	_, err = ledger.AddItem(doc, in.patch(), product)
	return err
}

func (r lineResolver) updateItem(ctx context.Context, doc ledger.Document, index int, in ItemInput) error {
	if err := doc.CheckMutable(); err != nil {
		return err
	}
	lines := doc.Lines()
	if index < 0 || index >= len(lines) {
		return apperror.NewNotFoundError("Item")
	}
	product, err := r.resolve(ctx, in, lines[index])
	if err != nil {
		return err
	}
	return ledger.UpdateItem(doc, index, in.patch(), product)
}

func requireCompany(ctx context.Context) (uuid.UUID, error) {
	companyID, ok := repository.CompanyFromContext(ctx)
	if !ok {
		return uuid.Nil, apperror.NewBadRequestError("Company context required")
	}
	return companyID, nil
}

func requireContact(ctx context.Context, contacts repository.ContactRepository, id uuid.UUID) error {
	contact, err := contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return apperror.NewNotFoundError("Contact")
	}
	return nil
}

// currencyOr returns the requested currency or the company's default
func currencyOr(ctx context.Context, companies repository.CompanyRepository, companyID uuid.UUID, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	company, err := companies.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", apperror.NewNotFoundError("Company")
	}
	return company.Currency, nil
}

func dateOr(d *time.Time, now time.Time) time.Time {
	if d != nil && !d.IsZero() {
		return *d
	}
	return now
}
