// Package order turns either input modality into one fixed OrderLine shape.
// Downstream code never branches on where a line came from.
package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/catalog"
	"github.com/joseph-ayodele/aps-analyzer/internal/extract"
)

// OrderLine is one physical line item of an order.
type OrderLine struct {
	Code           string
	Description    string
	Quantity       decimal.Decimal
	Unit           decimal.Decimal
	Total          decimal.Decimal
	SellerDiscount *decimal.Decimal // conference modality only
	Source         constants.Modality
}

// FromCandidates normalizes extracted records. The line total is the
// document's own total field; any malformed number aborts the conversion.
func FromCandidates(recs []extract.CandidateRecord) ([]OrderLine, error) {
	out := make([]OrderLine, 0, len(recs))
	for _, r := range recs {
		qty, err := extract.ParseNumber(r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("page %d item %s quantity: %w", r.Page, r.Code, err)
		}
		unit, err := extract.ParseNumber(r.Unit)
		if err != nil {
			return nil, fmt.Errorf("page %d item %s unit value: %w", r.Page, r.Code, err)
		}
		total, err := extract.ParseNumber(r.Total)
		if err != nil {
			return nil, fmt.Errorf("page %d item %s total: %w", r.Page, r.Code, err)
		}
		out = append(out, OrderLine{
			Code:        catalog.NormalizeKey(r.Code),
			Description: r.Description,
			Quantity:    qty,
			Unit:        unit,
			Total:       total,
			Source:      constants.ModalityDocument,
		})
	}
	return out, nil
}
