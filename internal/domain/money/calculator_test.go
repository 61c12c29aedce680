package money

import (
	"testing"

	"github.com/sangkips/ledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name                       string
		qty, price, rate           string
		wantSub, wantTax, wantTotl string
	}{
		{"quote scenario", "2", "100", "21", "200", "42", "242"},
		{"zero tax", "3", "19.99", "0", "59.97", "0", "59.97"},
		{"fractional quantity", "1.5", "10.01", "10", "15.02", "1.5", "16.52"},
		{"tax rounds half up", "1", "0.05", "10", "0.05", "0.01", "0.06"},
		{"zero quantity", "0", "100", "21", "0", "0", "0"},
		{"full tax", "1", "10", "100", "10", "10", "20"},
		{"cents survive", "3", "0.1", "0", "0.3", "0", "0.3"},
		{"trailing zeros past scale", "2.500000", "4.0000000", "21.000", "10", "2.1", "12.1"},
		{"four place inputs", "0.0001", "1000", "21.01", "0.1", "0.02", "0.12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(d(tt.qty), d(tt.price), d(tt.rate))
			require.NoError(t, err)

			assert.True(t, got.Subtotal.Equal(d(tt.wantSub)), "subtotal = %s, want %s", got.Subtotal, tt.wantSub)
			assert.True(t, got.TaxAmount.Equal(d(tt.wantTax)), "tax = %s, want %s", got.TaxAmount, tt.wantTax)
			assert.True(t, got.Total.Equal(d(tt.wantTotl)), "total = %s, want %s", got.Total, tt.wantTotl)
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.TaxAmount)))
		})
	}
}

func TestComputeRejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name             string
		qty, price, rate string
	}{
		{"negative quantity", "-1", "10", "0"},
		{"negative price", "1", "-0.01", "0"},
		{"negative tax", "1", "10", "-1"},
		{"tax above 100", "1", "10", "100.01"},
		{"quantity past four places", "0.00005", "1000", "21"},
		{"price past four places", "1", "0.00001", "0"},
		{"tax rate past two places", "1", "10", "21.005"},
		{"quantity past column precision", "10000000000000000", "1", "0"},
		{"price past column precision", "1", "10000000000000000", "0"},
		{"total past column precision", "9999999999999999", "9999999999999999", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(d(tt.qty), d(tt.price), d(tt.rate))
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
		})
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	first, err := Compute(d("7.333"), d("13.37"), d("19"))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Compute(d("7.333"), d("13.37"), d("19"))
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestSum(t *testing.T) {
	assert.True(t, Sum(nil).Equal(Zero()))

	a, _ := Compute(d("2"), d("100"), d("21"))
	b, _ := Compute(d("1"), d("50"), d("10"))
	total := Sum([]Amounts{a, b})

	assert.True(t, total.Subtotal.Equal(d("250")))
	assert.True(t, total.TaxAmount.Equal(d("47")))
	assert.True(t, total.Total.Equal(d("297")))
}
