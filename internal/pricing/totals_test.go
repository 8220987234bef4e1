package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestComputeTotals_TaxAfterDiscount(t *testing.T) {
	// subtotal=100, discount=25: taxable=75, tax=3.75.
	rates := Rates{Tax: d("0.05"), ServiceFee: decimal.Zero}
	totals := ComputeTotals(d("100"), d("25"), rates)

	assert.True(t, totals.Taxable.Equal(d("75")))
	assert.True(t, totals.Tax.Equal(d("3.75")))
	assert.True(t, totals.Total.Equal(d("78.75")))
}

func TestComputeTotals_OverDiscountClamped(t *testing.T) {
	// Pathological collaborator output: discount exceeds subtotal.
	rates := Rates{Tax: d("0.05"), ServiceFee: decimal.Zero}
	totals := ComputeTotals(d("50"), d("60"), rates)

	assert.True(t, totals.Discount.Equal(d("50")))
	assert.True(t, totals.Taxable.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_NegativeDiscountTreatedAsZero(t *testing.T) {
	totals := ComputeTotals(d("80"), d("-10"), DefaultRates())
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Taxable.Equal(d("80")))
}

// Regression pins for the two formula variants the canonical computation
// reconciles: tax-only (order summary sidebar) and fee-only (booking page).

func TestComputeTotals_TaxOnlyVariant(t *testing.T) {
	rates := Rates{Tax: d("0.05"), ServiceFee: decimal.Zero}
	totals := ComputeTotals(d("200"), d("20"), rates)

	// total = (200-20) + (200-20)*0.05 = 189
	assert.True(t, totals.ServiceFee.IsZero())
	assert.True(t, totals.Total.Equal(d("189")))
}

func TestComputeTotals_FeeOnlyVariant(t *testing.T) {
	rates := Rates{Tax: decimal.Zero, ServiceFee: d("0.05")}
	totals := ComputeTotals(d("200"), d("20"), rates)

	// Fee applies to the pre-discount subtotal: total = 180 + 200*0.05 = 190.
	assert.True(t, totals.ServiceFee.Equal(d("10")))
	assert.True(t, totals.Total.Equal(d("190")))
}

func TestComputeTotals_DefaultRates(t *testing.T) {
	totals := ComputeTotals(d("100"), decimal.Zero, DefaultRates())

	assert.True(t, totals.Tax.Equal(d("5")))
	assert.True(t, totals.ServiceFee.Equal(d("5")))
	assert.True(t, totals.Total.Equal(d("110")))
}

func TestComputeTotals_Rounding(t *testing.T) {
	rates := Rates{Tax: d("0.05"), ServiceFee: decimal.Zero}
	totals := ComputeTotals(d("10.99"), decimal.Zero, rates)

	// 10.99*0.05 = 0.5495, rounds to 0.55.
	assert.True(t, totals.Tax.Equal(d("0.55")))
	assert.True(t, totals.Total.Equal(d("11.54")))
}
