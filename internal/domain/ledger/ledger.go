// Package ledger owns the line items of a document and keeps its totals reconciled.
//
// Every mutation checks the document's mutability first, computes the new line in
// isolation and only then writes it back, so a rejected call leaves the document untouched.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/money"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Document is implemented by invoices, quotes and work orders
type Document interface {
	CheckMutable() error
	Lines() []*entity.LineItem
	AppendLine(line entity.LineItem)
	RemoveLine(index int)
	SetTotals(t entity.Totals)
}

// ProductSnapshot is the catalog state used to prefill a line when its product changes
type ProductSnapshot struct {
	ID      uuid.UUID
	Name    string
	Price   decimal.Decimal
	TaxRate decimal.Decimal
}

// SnapshotOf captures the pricing fields of a product
func SnapshotOf(p *entity.Product) *ProductSnapshot {
	if p == nil {
		return nil
	}
	return &ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, TaxRate: p.TaxRate}
}

// LinePatch lists the fields a caller sets on a line. Nil fields are left as they are.
type LinePatch struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	TaxRate     *decimal.Decimal
	ProductID   *uuid.UUID
	ProjectID   *uuid.UUID

	ClearProduct bool
	ClearProject bool
}

// ChangesProduct reports whether applying the patch to line points it at a different product
func (p LinePatch) ChangesProduct(line *entity.LineItem) bool {
	if p.ProductID == nil {
		return false
	}
	return line == nil || line.ProductID == nil || *line.ProductID != *p.ProductID
}

// AddItem appends a new line built from patch and returns its index.
// Quantity defaults to 1 when the patch leaves it unset.
func AddItem(doc Document, patch LinePatch, product *ProductSnapshot) (int, error) {
	if err := doc.CheckMutable(); err != nil {
		return -1, err
	}

	line := entity.LineItem{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		TaxRate:   decimal.Zero,
	}
	if err := apply(&line, patch, product); err != nil {
		return -1, err
	}

	doc.AppendLine(line)
	lines := doc.Lines()
	doc.SetTotals(totalsOf(lines))
	return len(lines) - 1, nil
}

// UpdateItem applies patch to the line at index.
// When the product changes, description, unit price and tax rate are taken from the
// product first and any of them set in the patch win.
func UpdateItem(doc Document, index int, patch LinePatch, product *ProductSnapshot) error {
	if err := doc.CheckMutable(); err != nil {
		return err
	}

	lines := doc.Lines()
	if index < 0 || index >= len(lines) {
		return itemNotFound(index)
	}

	updated := *lines[index]
	if err := apply(&updated, patch, product); err != nil {
		return err
	}

	*lines[index] = updated
	doc.SetTotals(totalsOf(lines))
	return nil
}

// RemoveItem deletes the line at index. Removing the last line leaves zero totals.
func RemoveItem(doc Document, index int) error {
	if err := doc.CheckMutable(); err != nil {
		return err
	}

	lines := doc.Lines()
	if index < 0 || index >= len(lines) {
		return itemNotFound(index)
	}

	doc.RemoveLine(index)
	doc.SetTotals(totalsOf(doc.Lines()))
	return nil
}

// Recompute rederives every line's amounts and the document totals.
// Nothing is written unless every line is valid.
func Recompute(doc Document) error {
	lines := doc.Lines()
	amounts := make([]money.Amounts, len(lines))
	for i, l := range lines {
		a, err := money.Compute(l.Quantity, l.UnitPrice, l.TaxRate)
		if err != nil {
			return err
		}
		amounts[i] = a
	}

	for i, l := range lines {
		l.SetAmounts(amounts[i])
	}
	doc.SetTotals(entity.TotalsFrom(money.Sum(amounts)))
	return nil
}

// BuildLine validates a standalone line and fills in its amounts
func BuildLine(patch LinePatch, product *ProductSnapshot) (entity.LineItem, error) {
	line := entity.LineItem{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		TaxRate:   decimal.Zero,
	}
	err := apply(&line, patch, product)
	return line, err
}

func apply(line *entity.LineItem, patch LinePatch, product *ProductSnapshot) error {
	if patch.ChangesProduct(line) {
		if product == nil || product.ID != *patch.ProductID {
			return apperror.NewNotFoundError("Product")
		}
		id := product.ID
		line.ProductID = &id
		line.Description = product.Name
		line.UnitPrice = product.Price
		line.TaxRate = product.TaxRate
	}
	if patch.ClearProduct {
		line.ProductID = nil
	}

	if patch.Description != nil {
		line.Description = *patch.Description
	}
	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		line.UnitPrice = *patch.UnitPrice
	}
	if patch.TaxRate != nil {
		line.TaxRate = *patch.TaxRate
	}
	if patch.ProjectID != nil {
		id := *patch.ProjectID
		line.ProjectID = &id
	}
	if patch.ClearProject {
		line.ProjectID = nil
	}

	amounts, err := money.Compute(line.Quantity, line.UnitPrice, line.TaxRate)
	if err != nil {
		return err
	}
	line.SetAmounts(amounts)
	return nil
}

func totalsOf(lines []*entity.LineItem) entity.Totals {
	amounts := make([]money.Amounts, len(lines))
	for i, l := range lines {
		amounts[i] = l.Amounts()
	}
	return entity.TotalsFrom(money.Sum(amounts))
}

func itemNotFound(index int) error {
	return apperror.NewNotFoundError(fmt.Sprintf("Item %d", index))
}
