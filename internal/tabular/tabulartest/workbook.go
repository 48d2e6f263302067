// Package tabulartest builds in-memory workbooks for tests.
package tabulartest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet; Rows are written from A1 downwards.
type Sheet struct {
	Name string
	Rows [][]any
}

// XLSX returns the bytes of a workbook holding sheets in order.
func XLSX(tb testing.TB, sheets ...Sheet) []byte {
	tb.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				tb.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			tb.Fatalf("new sheet: %v", err)
		}
		for r := range s.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			row := s.Rows[r]
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				tb.Fatalf("write row %d: %v", r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		tb.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
