package pricing

import "github.com/shopspring/decimal"

// Rates carries the fixed surcharge rates applied when totalling an order.
// Tax applies to the post-discount taxable amount; the service fee applies
// to the pre-discount subtotal.
type Rates struct {
	Tax        decimal.Decimal `json:"tax"`
	ServiceFee decimal.Decimal `json:"service_fee"`
}

// DefaultRates returns the standard 5% tax and 5% service fee.
func DefaultRates() Rates {
	return Rates{
		Tax:        decimal.NewFromFloat(0.05),
		ServiceFee: decimal.NewFromFloat(0.05),
	}
}

// Totals is the monetary breakdown of an order. It is derived on demand and
// never stored.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Taxable    decimal.Decimal `json:"taxable"`
	Tax        decimal.Decimal `json:"tax"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Total      decimal.Decimal `json:"total"`
}

// ComputeTotals derives the full breakdown for a subtotal and an absolute
// discount. The discount is clamped to [0, subtotal] so the taxable amount
// never goes negative, even when a collaborator returns an over-discount.
// Monetary results are rounded to two decimal places.
func ComputeTotals(subtotal, discount decimal.Decimal, rates Rates) Totals {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(rates.Tax).Round(2)
	serviceFee := subtotal.Mul(rates.ServiceFee).Round(2)

	return Totals{
		Subtotal:   subtotal.Round(2),
		Discount:   discount.Round(2),
		Taxable:    taxable.Round(2),
		Tax:        tax,
		ServiceFee: serviceFee,
		Total:      taxable.Add(tax).Add(serviceFee).Round(2),
	}
}
