package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders v as Brazilian currency for display: "R$ 1.234,56".
// Negative values keep the sign after the symbol ("R$ -10,00").
func FormatBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if v.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// FormatPct renders a percentage with two decimals: "12.86%".
func FormatPct(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}
