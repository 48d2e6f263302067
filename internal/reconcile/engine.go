// Package reconcile joins order lines to the price catalog and derives
// discount and margin figures.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/catalog"
	"github.com/joseph-ayodele/aps-analyzer/internal/order"
)

// Line is an order line with its catalog reference and derived metrics.
type Line struct {
	order.OrderLine
	Category       string
	Matched        bool // false: no catalog entry, ReferencePrice is zero
	ReferencePrice decimal.Decimal
	UnitDiscount   decimal.Decimal // ReferencePrice − Unit
	LineDiscount   decimal.Decimal // UnitDiscount × Quantity
	DiscountPct    decimal.Decimal
	MarginPct      decimal.Decimal
}

// TableValue is the line priced at the catalog: ReferencePrice × Quantity.
func (l Line) TableValue() decimal.Decimal {
	return l.ReferencePrice.Mul(l.Quantity)
}

// Reconcile left-joins lines to the catalog on the trimmed code. Every input
// line appears in the output, in input order. Lines without a match (or whose
// entry lacks a price) get a zero reference price and defaultCategory when
// unmatched.
func Reconcile(lines []order.OrderLine, cat *catalog.Catalog, defaultCategory string) []Line {
	if defaultCategory == "" {
		defaultCategory = constants.DefaultCategory
	}
	out := make([]Line, 0, len(lines))
	for _, ol := range lines {
		l := Line{OrderLine: ol, Category: defaultCategory, ReferencePrice: decimal.Zero}
		if e, ok := cat.Lookup(ol.Code); ok {
			l.Matched = true
			l.ReferencePrice = e.ReferencePrice()
			if e.Category != "" {
				l.Category = e.Category
			}
		}
		out = append(out, compute(l))
	}
	return out
}

func compute(l Line) Line {
	l.UnitDiscount = l.ReferencePrice.Sub(l.Unit)
	l.LineDiscount = l.UnitDiscount.Mul(l.Quantity)
	l.DiscountPct = SafeRatio(l.UnitDiscount, l.ReferencePrice)
	l.MarginPct = SafeRatio(l.Unit.Sub(l.ReferencePrice), l.Unit)
	return l
}
