package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals are the run-wide figures.
type Totals struct {
	Items          int
	Unmatched      int
	OrderTotal     decimal.Decimal // Σ line totals
	TotalDiscount  decimal.Decimal // Σ line discounts
	TableTotal     decimal.Decimal // Σ reference price × quantity
	SellerDiscount decimal.Decimal // Σ seller discounts, conference modality only
	DiscountPct    decimal.Decimal // TotalDiscount / TableTotal
	MarginPct      decimal.Decimal // (OrderTotal − TableTotal) / OrderTotal
}

// CategorySummary rolls up the lines of one category.
type CategorySummary struct {
	Category        string
	Items           int
	Total           decimal.Decimal
	Discount        decimal.Decimal
	SellerDiscount  decimal.Decimal
	MeanDiscountPct decimal.Decimal // simple mean over lines, not value-weighted
}

type Summary struct {
	Totals     Totals
	Categories []CategorySummary // sorted by category label
}

// Summarize computes grand totals and per-category rollups.
func Summarize(lines []Line) Summary {
	t := Totals{
		Items:          len(lines),
		OrderTotal:     decimal.Zero,
		TotalDiscount:  decimal.Zero,
		TableTotal:     decimal.Zero,
		SellerDiscount: decimal.Zero,
	}
	byCat := map[string]*CategorySummary{}
	pctSum := map[string]decimal.Decimal{}

	for _, l := range lines {
		if !l.Matched {
			t.Unmatched++
		}
		t.OrderTotal = t.OrderTotal.Add(l.Total)
		t.TotalDiscount = t.TotalDiscount.Add(l.LineDiscount)
		t.TableTotal = t.TableTotal.Add(l.TableValue())

		cs, ok := byCat[l.Category]
		if !ok {
			cs = &CategorySummary{
				Category:       l.Category,
				Total:          decimal.Zero,
				Discount:       decimal.Zero,
				SellerDiscount: decimal.Zero,
			}
			byCat[l.Category] = cs
			pctSum[l.Category] = decimal.Zero
		}
		cs.Items++
		cs.Total = cs.Total.Add(l.Total)
		cs.Discount = cs.Discount.Add(l.LineDiscount)
		pctSum[l.Category] = pctSum[l.Category].Add(l.DiscountPct)

		if l.SellerDiscount != nil {
			t.SellerDiscount = t.SellerDiscount.Add(*l.SellerDiscount)
			cs.SellerDiscount = cs.SellerDiscount.Add(*l.SellerDiscount)
		}
	}

	t.DiscountPct = SafeRatio(t.TotalDiscount, t.TableTotal)
	t.MarginPct = SafeRatio(t.OrderTotal.Sub(t.TableTotal), t.OrderTotal)

	cats := make([]CategorySummary, 0, len(byCat))
	for name, cs := range byCat {
		cs.MeanDiscountPct = pctSum[name].Div(decimal.NewFromInt(int64(cs.Items)))
		cats = append(cats, *cs)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Category < cats[j].Category })

	return Summary{Totals: t, Categories: cats}
}
