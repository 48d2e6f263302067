package reconcile

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SafeRatio returns num/den as a percentage, or zero when den <= 0. Every
// percentage in this package goes through it.
func SafeRatio(num, den decimal.Decimal) decimal.Decimal {
	if den.Sign() <= 0 {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred)
}
