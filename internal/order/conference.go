package order

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/catalog"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/extract"
	"github.com/joseph-ayodele/aps-analyzer/internal/tabular"
)

// ConferenceConfig describes the conference export layout.
type ConferenceConfig struct {
	Sheet                string
	HeaderOffset         int // rows skipped before the header row
	MaterialColumn       string
	DescriptionColumn    string
	QuantityColumn       string
	UnitColumn           string
	SellerDiscountColumn string // optional
	TotalColumn          string // optional
	RecomputeTotal       bool   // prefer quantity × unit over the sheet's total
}

// ConferenceReader reads order lines from a conference spreadsheet.
type ConferenceReader struct {
	cfg    ConferenceConfig
	logger *slog.Logger
}

func NewConferenceReader(cfg ConferenceConfig, logger *slog.Logger) *ConferenceReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConferenceReader{cfg: cfg, logger: logger}
}

type conferenceColumns struct {
	material, description, quantity, unit, sellerDiscount, total int
}

// Read parses the conference sheet. Rows without a material code, with a
// "not available" code, or without a unit value are dropped.
func (c *ConferenceReader) Read(name string, data []byte) ([]OrderLine, error) {
	tbl, err := tabular.Read(name, data, c.cfg.Sheet, c.cfg.HeaderOffset)
	switch {
	case errors.Is(err, tabular.ErrSheetNotFound):
		return nil, common.NewSchemaMismatch(c.cfg.Sheet, "sheet not found", err)
	case errors.Is(err, tabular.ErrNoHeader):
		return nil, common.NewSchemaMismatch(c.cfg.Sheet, fmt.Sprintf("no header row after %d leading rows", c.cfg.HeaderOffset), err)
	case err != nil:
		return nil, err
	}

	cols, err := c.columns(tbl)
	if err != nil {
		return nil, err
	}

	var (
		out     []OrderLine
		dropped int
	)
	for i, row := range tbl.Rows {
		code := catalog.NormalizeKey(tabular.Cell(row, cols.material))
		unitRaw := tabular.Cell(row, cols.unit)
		if constants.IsNotAvailable(code) || constants.IsNotAvailable(unitRaw) {
			dropped++
			continue
		}

		// data row i sits below the skipped rows and the header
		sheetRow := c.cfg.HeaderOffset + 2 + i
		unit, err := extract.ParseFlexible(unitRaw)
		if err != nil {
			return nil, fmt.Errorf("row %d unit value: %w", sheetRow, err)
		}
		qty, err := optionalNumber(tabular.Cell(row, cols.quantity))
		if err != nil {
			return nil, fmt.Errorf("row %d quantity: %w", sheetRow, err)
		}
		line := OrderLine{
			Code:        code,
			Description: tabular.Cell(row, cols.description),
			Quantity:    qty,
			Unit:        unit,
			Total:       qty.Mul(unit),
			Source:      constants.ModalityConference,
		}
		if cols.sellerDiscount >= 0 {
			if raw := tabular.Cell(row, cols.sellerDiscount); !constants.IsNotAvailable(raw) {
				d, err := extract.ParseFlexible(raw)
				if err != nil {
					return nil, fmt.Errorf("row %d seller discount: %w", sheetRow, err)
				}
				line.SellerDiscount = &d
			}
		}
		if cols.total >= 0 && !c.cfg.RecomputeTotal {
			if raw := tabular.Cell(row, cols.total); !constants.IsNotAvailable(raw) {
				total, err := extract.ParseFlexible(raw)
				if err != nil {
					return nil, fmt.Errorf("row %d total: %w", sheetRow, err)
				}
				line.Total = total
			}
		}
		out = append(out, line)
	}

	c.logger.Debug("conference.read.ok", "sheet", tbl.Sheet, "lines", len(out), "dropped", dropped)
	return out, nil
}

func (c *ConferenceReader) columns(tbl tabular.Table) (conferenceColumns, error) {
	cols := conferenceColumns{
		material:       tbl.Column(c.cfg.MaterialColumn),
		description:    tbl.Column(c.cfg.DescriptionColumn),
		quantity:       tbl.Column(c.cfg.QuantityColumn),
		unit:           tbl.Column(c.cfg.UnitColumn),
		sellerDiscount: tbl.Column(c.cfg.SellerDiscountColumn),
		total:          tbl.Column(c.cfg.TotalColumn),
	}
	required := []struct {
		name string
		idx  int
	}{
		{c.cfg.MaterialColumn, cols.material},
		{c.cfg.QuantityColumn, cols.quantity},
		{c.cfg.UnitColumn, cols.unit},
	}
	var missing []string
	for _, r := range required {
		if r.idx < 0 {
			missing = append(missing, r.name)
		}
	}
	switch {
	case len(missing) == len(required):
		// nothing recognizable at the offset: wrong sheet layout
		return cols, common.NewSchemaMismatch(c.cfg.Sheet,
			fmt.Sprintf("header row %d has none of the columns %q", c.cfg.HeaderOffset+1, missing), nil)
	case len(missing) > 0:
		return cols, common.NewParseError("conference sheet", fmt.Errorf("missing columns %q", missing))
	}
	return cols, nil
}

// optionalNumber treats an empty cell as zero.
func optionalNumber(raw string) (decimal.Decimal, error) {
	if constants.IsNotAvailable(raw) {
		return decimal.Zero, nil
	}
	return extract.ParseFlexible(raw)
}
