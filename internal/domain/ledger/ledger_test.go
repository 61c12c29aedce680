package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/entity"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func str(s string) *string { return &s }

func assertReconciled(t *testing.T, doc Document, totals entity.Totals) {
	t.Helper()
	sub, tax, tot := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range doc.Lines() {
		assert.True(t, l.Total.Equal(l.Subtotal.Add(l.TaxAmount)), "line total drifted")
		sub = sub.Add(l.Subtotal)
		tax = tax.Add(l.TaxAmount)
		tot = tot.Add(l.Total)
	}
	assert.True(t, totals.Subtotal.Equal(sub), "subtotal %s != %s", totals.Subtotal, sub)
	assert.True(t, totals.TaxAmount.Equal(tax), "tax %s != %s", totals.TaxAmount, tax)
	assert.True(t, totals.Total.Equal(tot), "total %s != %s", totals.Total, tot)
}

func TestAddUpdateRemoveKeepTotalsReconciled(t *testing.T) {
	q := &entity.Quote{ID: uuid.New(), Number: "Q-0001"}

	idx, err := AddItem(q, LinePatch{Description: str("Consulting"), Quantity: dec("2"), UnitPrice: dec("100"), TaxRate: dec("21")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("242")))
	assert.True(t, q.Subtotal.Equal(decimal.RequireFromString("200")))
	assert.True(t, q.TaxAmount.Equal(decimal.RequireFromString("42")))
	assertReconciled(t, q, q.Totals)

	idx, err = AddItem(q, LinePatch{Description: str("Travel"), UnitPrice: dec("35.50")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.True(t, q.Items[1].Quantity.Equal(decimal.NewFromInt(1)))
	assertReconciled(t, q, q.Totals)

	require.NoError(t, UpdateItem(q, 1, LinePatch{Quantity: dec("3")}, nil))
	assert.True(t, q.Items[1].Total.Equal(decimal.RequireFromString("106.5")))
	assertReconciled(t, q, q.Totals)

	require.NoError(t, RemoveItem(q, 0))
	require.Len(t, q.Items, 1)
	assert.Equal(t, 0, q.Items[0].Position)
	assertReconciled(t, q, q.Totals)

	require.NoError(t, RemoveItem(q, 0))
	assert.Empty(t, q.Items)
	assert.True(t, q.Total.IsZero())
	assertReconciled(t, q, q.Totals)
}

func TestValidatedInvoiceRejectsEveryMutation(t *testing.T) {
	inv := &entity.Invoice{ID: uuid.New(), Number: "INV-0001"}
	_, err := AddItem(inv, LinePatch{UnitPrice: dec("10")}, nil)
	require.NoError(t, err)
	inv.ValidationStatus = enum.ValidationStatusValidated
	before := inv.Totals

	_, err = AddItem(inv, LinePatch{UnitPrice: dec("10")}, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindDocumentLocked))

	err = UpdateItem(inv, 0, LinePatch{Quantity: dec("5")}, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindDocumentLocked))

	err = RemoveItem(inv, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindDocumentLocked))

	assert.Len(t, inv.Items, 1)
	assert.Equal(t, before, inv.Totals)
}

func TestConvertedQuoteRejectsMutation(t *testing.T) {
	invoiceID := uuid.New()
	q := &entity.Quote{ID: uuid.New(), ConvertedInvoiceID: &invoiceID}

	_, err := AddItem(q, LinePatch{UnitPrice: dec("1")}, nil)
	assert.ErrorIs(t, err, apperror.ErrDocumentLocked)
}

func TestWorkOrderIsNeverLocked(t *testing.T) {
	wo := &entity.WorkOrder{ID: uuid.New()}
	_, err := AddItem(wo, LinePatch{UnitPrice: dec("80"), Quantity: dec("1.5")}, nil)
	require.NoError(t, err)
	wo.Items[0].Progress = enum.WorkProgressCompleted

	require.NoError(t, UpdateItem(wo, 0, LinePatch{Quantity: dec("2")}, nil))
	assert.True(t, wo.Total.Equal(decimal.RequireFromString("160")))
}

func TestInvalidAmountLeavesDocumentUntouched(t *testing.T) {
	inv := &entity.Invoice{ID: uuid.New()}
	_, err := AddItem(inv, LinePatch{Quantity: dec("2"), UnitPrice: dec("50"), TaxRate: dec("10")}, nil)
	require.NoError(t, err)
	before := inv.Totals
	line := inv.Items[0].LineItem

	tests := []struct {
		name  string
		patch LinePatch
	}{
		{"negative quantity", LinePatch{Quantity: dec("-1")}},
		{"negative price", LinePatch{UnitPrice: dec("-3")}},
		{"tax over 100", LinePatch{TaxRate: dec("101")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UpdateItem(inv, 0, tt.patch, nil)
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
			assert.Equal(t, line, inv.Items[0].LineItem)
			assert.Equal(t, before, inv.Totals)

			_, err = AddItem(inv, tt.patch, nil)
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
			assert.Len(t, inv.Items, 1)
		})
	}
}

func TestIndexOutOfRange(t *testing.T) {
	inv := &entity.Invoice{ID: uuid.New()}

	assert.True(t, apperror.IsKind(UpdateItem(inv, 0, LinePatch{}, nil), apperror.KindNotFound))
	assert.True(t, apperror.IsKind(RemoveItem(inv, -1), apperror.KindNotFound))
}

func TestProductChangeRederivesDefaults(t *testing.T) {
	widget := &ProductSnapshot{ID: uuid.New(), Name: "Widget", Price: decimal.RequireFromString("12.50"), TaxRate: decimal.RequireFromString("10")}
	gadget := &ProductSnapshot{ID: uuid.New(), Name: "Gadget", Price: decimal.RequireFromString("40"), TaxRate: decimal.RequireFromString("21")}

	inv := &entity.Invoice{ID: uuid.New()}
	_, err := AddItem(inv, LinePatch{ProductID: &widget.ID, Quantity: dec("2")}, widget)
	require.NoError(t, err)

	item := inv.Items[0]
	assert.Equal(t, "Widget", item.Description)
	assert.True(t, item.UnitPrice.Equal(widget.Price))
	assert.True(t, item.Total.Equal(decimal.RequireFromString("27.5")))

	// user override sticks while the product stays the same
	require.NoError(t, UpdateItem(inv, 0, LinePatch{ProductID: &widget.ID, UnitPrice: dec("11")}, nil))
	assert.True(t, inv.Items[0].UnitPrice.Equal(decimal.RequireFromString("11")))

	require.NoError(t, UpdateItem(inv, 0, LinePatch{ProductID: &gadget.ID, Description: str("Gadget XL")}, gadget))
	item = inv.Items[0]
	assert.Equal(t, "Gadget XL", item.Description)
	assert.True(t, item.UnitPrice.Equal(gadget.Price))
	assert.True(t, item.TaxRate.Equal(gadget.TaxRate))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(2)))
	assertReconciled(t, inv, inv.Totals)
}

func TestProductChangeWithoutSnapshotIsNotFound(t *testing.T) {
	inv := &entity.Invoice{ID: uuid.New()}
	id := uuid.New()

	_, err := AddItem(inv, LinePatch{ProductID: &id}, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Empty(t, inv.Items)
}

func TestRecomputeFixesStaleAmounts(t *testing.T) {
	inv := &entity.Invoice{ID: uuid.New()}
	inv.Items = []entity.InvoiceItem{
		{LineItem: entity.LineItem{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(21), Total: decimal.NewFromInt(999)}},
		{LineItem: entity.LineItem{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(10)}},
	}

	require.NoError(t, Recompute(inv))
	assert.True(t, inv.Items[0].Total.Equal(decimal.NewFromInt(242)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(297)))
	assertReconciled(t, inv, inv.Totals)

	first := inv.Totals
	require.NoError(t, Recompute(inv))
	assert.True(t, first.Amounts().Equal(inv.Totals.Amounts()))
}
