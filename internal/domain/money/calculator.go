// Package money computes line and document amounts with exact decimal arithmetic.
package money

import (
	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept on every monetary amount.
const Places int32 = 2

// Input scales match the stored columns: quantity and unit price are decimal(20,4),
// tax rate is decimal(5,2) and derived amounts are decimal(20,2).
const (
	InputPlaces int32 = 4
	RatePlaces  int32 = 2
)

var (
	hundred   = decimal.NewFromInt(100)
	maxInput  = decimal.New(1, 16)
	maxAmount = decimal.New(1, 18)
)

// Amounts holds the derived values of a line or of a whole document.
type Amounts struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Zero returns amounts with every field set to 0.00.
func Zero() Amounts {
	return Amounts{
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Add returns the pairwise sum of a and b.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Subtotal:  a.Subtotal.Add(b.Subtotal),
		TaxAmount: a.TaxAmount.Add(b.TaxAmount),
		Total:     a.Total.Add(b.Total),
	}
}

// Equal compares amounts by value, ignoring decimal exponent differences.
func (a Amounts) Equal(b Amounts) bool {
	return a.Subtotal.Equal(b.Subtotal) && a.TaxAmount.Equal(b.TaxAmount) && a.Total.Equal(b.Total)
}

// IsZero reports whether the total is zero.
func (a Amounts) IsZero() bool {
	return a.Total.IsZero()
}

// ValidateInputs rejects negative quantities and prices, tax rates outside [0, 100]
// and values that would be rounded or overflow when stored.
func ValidateInputs(quantity, unitPrice, taxRate decimal.Decimal) error {
	if quantity.IsNegative() {
		return apperror.NewInvalidAmountError("Quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return apperror.NewInvalidAmountError("Unit price cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		return apperror.NewInvalidAmountError("Tax rate must be between 0 and 100")
	}
	if !FitsInput(quantity) {
		return apperror.NewInvalidAmountError("Quantity allows at most 4 decimal places and 16 integer digits")
	}
	if !FitsInput(unitPrice) {
		return apperror.NewInvalidAmountError("Unit price allows at most 4 decimal places and 16 integer digits")
	}
	if !taxRate.Equal(taxRate.Truncate(RatePlaces)) {
		return apperror.NewInvalidAmountError("Tax rate allows at most 2 decimal places")
	}
	return nil
}

// FitsInput reports whether d survives a decimal(20,4) column unchanged
func FitsInput(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(InputPlaces)) && d.Abs().LessThan(maxInput)
}

// Compute derives subtotal, tax and total for one line.
// Subtotal and tax are rounded half away from zero to two places and the total is their sum,
// so total == subtotal + tax holds exactly.
func Compute(quantity, unitPrice, taxRate decimal.Decimal) (Amounts, error) {
	if err := ValidateInputs(quantity, unitPrice, taxRate); err != nil {
		return Amounts{}, err
	}

	exact := quantity.Mul(unitPrice)
	subtotal := exact.Round(Places)
	tax := exact.Mul(taxRate).Div(hundred).Round(Places)

	if subtotal.Add(tax).GreaterThanOrEqual(maxAmount) {
		return Amounts{}, apperror.NewInvalidAmountError("Line total exceeds the supported range")
	}

	return Amounts{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}, nil
}

// Sum adds up already computed line amounts. An empty slice sums to zero.
func Sum(lines []Amounts) Amounts {
	total := Zero()
	for _, l := range lines {
		total = total.Add(l)
	}
	return total
}
