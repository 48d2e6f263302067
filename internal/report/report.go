// Package report renders an analysis result as a JSON document with a
// published schema.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/aps-analyzer/internal/analysis"
)

// Report is the JSON shape of one analysis. Amounts are fixed two-decimal strings.
type Report struct {
	RunID      string     `json:"run_id"`
	Modality   string     `json:"modality"`
	Status     string     `json:"status"`
	Warnings   []string   `json:"warnings"`
	Totals     Totals     `json:"totals"`
	Categories []Category `json:"categories"`
	Lines      []Line     `json:"lines"`
}

type Totals struct {
	Items          int    `json:"items"`
	Unmatched      int    `json:"unmatched"`
	OrderTotal     string `json:"order_total"`
	TableTotal     string `json:"table_total"`
	TotalDiscount  string `json:"total_discount"`
	SellerDiscount string `json:"seller_discount"`
	DiscountPct    string `json:"discount_pct"`
	MarginPct      string `json:"margin_pct"`
}

type Category struct {
	Category        string `json:"category"`
	Items           int    `json:"items"`
	Total           string `json:"total"`
	Discount        string `json:"discount"`
	SellerDiscount  string `json:"seller_discount"`
	MeanDiscountPct string `json:"mean_discount_pct"`
}

type Line struct {
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Matched        bool    `json:"matched"`
	Quantity       string  `json:"quantity"`
	Unit           string  `json:"unit"`
	Total          string  `json:"total"`
	ReferencePrice string  `json:"reference_price"`
	UnitDiscount   string  `json:"unit_discount"`
	LineDiscount   string  `json:"line_discount"`
	DiscountPct    string  `json:"discount_pct"`
	MarginPct      string  `json:"margin_pct"`
	SellerDiscount *string `json:"seller_discount,omitempty"`
}

// Build converts res into its report form.
func Build(res *analysis.Result) Report {
	t := res.Summary.Totals
	r := Report{
		RunID:    res.RunID,
		Modality: string(res.Modality),
		Status:   string(res.Status),
		Warnings: append([]string{}, res.Warnings...),
		Totals: Totals{
			Items:          t.Items,
			Unmatched:      t.Unmatched,
			OrderTotal:     fixed(t.OrderTotal),
			TableTotal:     fixed(t.TableTotal),
			TotalDiscount:  fixed(t.TotalDiscount),
			SellerDiscount: fixed(t.SellerDiscount),
			DiscountPct:    fixed(t.DiscountPct),
			MarginPct:      fixed(t.MarginPct),
		},
		Categories: make([]Category, 0, len(res.Summary.Categories)),
		Lines:      make([]Line, 0, len(res.Lines)),
	}

	for _, c := range res.Summary.Categories {
		r.Categories = append(r.Categories, Category{
			Category:        c.Category,
			Items:           c.Items,
			Total:           fixed(c.Total),
			Discount:        fixed(c.Discount),
			SellerDiscount:  fixed(c.SellerDiscount),
			MeanDiscountPct: fixed(c.MeanDiscountPct),
		})
	}
	for _, l := range res.Lines {
		line := Line{
			Code:           l.Code,
			Description:    l.Description,
			Category:       l.Category,
			Matched:        l.Matched,
			Quantity:       fixed(l.Quantity),
			Unit:           fixed(l.Unit),
			Total:          fixed(l.Total),
			ReferencePrice: fixed(l.ReferencePrice),
			UnitDiscount:   fixed(l.UnitDiscount),
			LineDiscount:   fixed(l.LineDiscount),
			DiscountPct:    fixed(l.DiscountPct),
			MarginPct:      fixed(l.MarginPct),
		}
		if l.SellerDiscount != nil {
			s := fixed(*l.SellerDiscount)
			line.SellerDiscount = &s
		}
		r.Lines = append(r.Lines, line)
	}
	return r
}

// Marshal encodes r and checks the output against Schema.
func Marshal(r Report) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

func fixed(d decimal.Decimal) string { return d.StringFixed(2) }
