package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/analysis"
)

const (
	DefaultSheet = "Analise"
	SummarySheet = "Resumo"
)

// Service turns a finished analysis into XLSX bytes.
type Service struct {
	sheet  string
	logger *slog.Logger
}

func NewService(sheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Service{sheet: sheet, logger: logger}
}

var lineHeaders = []any{
	"Cod Sap",
	"Descrição",
	"Categoria",
	"Qtd",
	"Unit",
	"Total",
	"Tab_Price",
	"Desc Unit R$",
	"Desc Total R$",
	"Desc %",
	"Margem %",
}

// WriteXLSX returns a workbook with one row per reconciled line (numbers kept
// numeric) and a summary sheet with the totals and category rollups.
func (s *Service) WriteXLSX(res *analysis.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("xlsx export: nil result")
	}
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := s.writeLines(f, res); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := writeSummary(f, res); err != nil {
		return nil, err
	}
	idx, _ := f.GetSheetIndex(s.sheet)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", res.RunID,
		"rows", len(res.Lines),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeLines(f *excelize.File, res *analysis.Result) error {
	conference := res.Modality == constants.ModalityConference
	headers := lineHeaders
	if conference {
		headers = append(append([]any{}, lineHeaders...), "Desc Vendedor")
	}
	if err := setRow(f, s.sheet, 1, headers); err != nil {
		return err
	}

	for i, l := range res.Lines {
		row := []any{
			l.Code,
			l.Description,
			l.Category,
			num(l.Quantity),
			num(l.Unit),
			num(l.Total),
			num(l.ReferencePrice),
			num(l.UnitDiscount),
			num(l.LineDiscount),
			num(l.DiscountPct.Round(2)),
			num(l.MarginPct.Round(2)),
		}
		if conference {
			var seller any
			if l.SellerDiscount != nil {
				seller = num(*l.SellerDiscount)
			}
			row = append(row, seller)
		}
		if err := setRow(f, s.sheet, i+2, row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(s.sheet, "A", "A", 14) // code
	_ = f.SetColWidth(s.sheet, "B", "B", 48) // description
	_ = f.SetColWidth(s.sheet, "C", "C", 18) // category
	_ = f.SetColWidth(s.sheet, "D", "L", 14) // amounts
	return nil
}

func writeSummary(f *excelize.File, res *analysis.Result) error {
	t := res.Summary.Totals
	rows := [][]any{
		{"Itens", t.Items},
		{"Itens sem preço de tabela", t.Unmatched},
		{"Total Pedido", num(t.OrderTotal)},
		{"Preço Tabela Total", num(t.TableTotal)},
		{"Desconto Total", num(t.TotalDiscount)},
		{"Desconto %", num(t.DiscountPct.Round(2))},
		{"Margem %", num(t.MarginPct.Round(2))},
	}
	if res.Modality == constants.ModalityConference {
		rows = append(rows, []any{"Desconto Vendedor", num(t.SellerDiscount)})
	}
	rows = append(rows, nil, []any{"Categoria", "Itens", "Total", "Desconto", "Desc % médio", "Desc Vendedor"})
	for _, c := range res.Summary.Categories {
		rows = append(rows, []any{
			c.Category,
			c.Items,
			num(c.Total),
			num(c.Discount),
			num(c.MeanDiscountPct.Round(2)),
			num(c.SellerDiscount),
		})
	}

	for i, r := range rows {
		if r == nil {
			continue
		}
		if err := setRow(f, SummarySheet, i+1, r); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 28)
	_ = f.SetColWidth(SummarySheet, "B", "F", 14)
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }
