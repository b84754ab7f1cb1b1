// Package money holds the decimal conventions shared by prices and order totals.
package money

import "github.com/shopspring/decimal"

func init() {
	// The backend exchanges prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Zero is the zero amount.
var Zero = decimal.Zero

// FromFloat converts a major-unit float into an amount rounded to cents.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// Line returns price multiplied by quantity.
func Line(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Format renders an amount with two decimals (e.g., "180.00").
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
