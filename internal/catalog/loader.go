package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/extract"
	"github.com/joseph-ayodele/aps-analyzer/internal/tabular"
)

type Config struct {
	Sheet           string // "" -> first sheet
	KeyColumn       string
	PriceColumn     string
	CategoryColumn  string // optional in the source table
	DefaultCategory string // used when CategoryColumn is absent or blank
}

type Loader struct {
	cfg    Config
	logger *slog.Logger
}

func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.KeyColumn == "" {
		cfg.KeyColumn = "Cod Sap"
	}
	if cfg.PriceColumn == "" {
		cfg.PriceColumn = "Price"
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = constants.DefaultCategory
	}
	return &Loader{cfg: cfg, logger: logger}
}

// Load reads the price table. The key and price columns are required; a
// non-numeric price leaves the entry without a price instead of failing.
func (l *Loader) Load(name string, data []byte) (*Catalog, error) {
	tbl, err := tabular.Read(name, data, l.cfg.Sheet, 0)
	if err != nil {
		if errors.Is(err, tabular.ErrSheetNotFound) || errors.Is(err, tabular.ErrNoHeader) {
			return nil, common.NewParseError("price table", err)
		}
		return nil, err
	}

	keyIdx := tbl.Column(l.cfg.KeyColumn)
	if keyIdx < 0 {
		return nil, common.NewParseError("price table", fmt.Errorf("missing column %q", l.cfg.KeyColumn))
	}
	priceIdx := tbl.Column(l.cfg.PriceColumn)
	if priceIdx < 0 {
		return nil, common.NewParseError("price table", fmt.Errorf("missing column %q", l.cfg.PriceColumn))
	}
	catIdx := tbl.Column(l.cfg.CategoryColumn)

	entries := make([]Entry, 0, len(tbl.Rows))
	missingPrice := 0
	for i, row := range tbl.Rows {
		code := NormalizeKey(tabular.Cell(row, keyIdx))
		if constants.IsNotAvailable(code) {
			continue
		}
		e := Entry{Code: code, Category: l.cfg.DefaultCategory, Row: i + 1}
		if p, err := extract.ParseFlexible(tabular.Cell(row, priceIdx)); err == nil {
			e.Price = &p
		} else {
			missingPrice++
		}
		if cat := tabular.Cell(row, catIdx); !constants.IsNotAvailable(cat) {
			e.Category = cat
		}
		entries = append(entries, e)
	}

	c := New(entries)
	if dups := c.Duplicates(); len(dups) > 0 {
		l.logger.Warn("catalog.duplicate_keys", "count", len(dups), "first", dups[0])
	}
	l.logger.Debug("catalog.load.ok",
		"entries", c.Len(),
		"missing_price", missingPrice,
		"has_category", catIdx >= 0,
	)
	return c, nil
}
