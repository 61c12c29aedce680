package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// LineItem holds the priced fields shared by invoice, quote and work order items.
// Subtotal, TaxAmount and Total are derived and rewritten on every recompute.
type LineItem struct {
	Description string          `gorm:"type:text" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_price"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProjectID   *uuid.UUID      `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`
	Total       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
}

// Amounts returns the stored derived values
func (l LineItem) Amounts() money.Amounts {
	return money.Amounts{Subtotal: l.Subtotal, TaxAmount: l.TaxAmount, Total: l.Total}
}

// SetAmounts overwrites the derived values
func (l *LineItem) SetAmounts(a money.Amounts) {
	l.Subtotal = a.Subtotal
	l.TaxAmount = a.TaxAmount
	l.Total = a.Total
}

// Totals are the document-level sums of its line amounts
type Totals struct {
	Subtotal  decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
}

// TotalsFrom converts calculator amounts into stored totals
func TotalsFrom(a money.Amounts) Totals {
	return Totals{Subtotal: a.Subtotal, TaxAmount: a.TaxAmount, Total: a.Total}
}

// Amounts returns the totals as calculator amounts
func (t Totals) Amounts() money.Amounts {
	return money.Amounts{Subtotal: t.Subtotal, TaxAmount: t.TaxAmount, Total: t.Total}
}

// HasNonzeroLine reports whether any line carries a nonzero total
func HasNonzeroLine(lines []*LineItem) bool {
	for _, l := range lines {
		if !l.Total.IsZero() {
			return true
		}
	}
	return false
}
