// Package tabular reads spreadsheet-like inputs (xlsx, csv) into header + rows.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrNoHeader      = errors.New("header row not found")
)

// Table is a sheet with its header row. Rows may be shorter than Headers.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// Column returns the index of the named header (trimmed, case-insensitive), or -1.
func (t Table) Column(name string) int {
	want := strings.TrimSpace(name)
	if want == "" {
		return -1
	}
	for i, h := range t.Headers {
		if strings.EqualFold(h, want) {
			return i
		}
	}
	return -1
}

// Cell returns row[idx] trimmed, or "" when the column is absent or the row is short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Read dispatches on the file extension. sheet is ignored for csv.
func Read(name string, data []byte, sheet string, skipRows int) (Table, error) {
	switch constants.MapExtToFormat(filepath.Ext(name)) {
	case constants.XLSX:
		return ReadXLSX(data, sheet, skipRows)
	case constants.CSV:
		return ReadCSV(data, skipRows)
	default:
		return Table{}, common.NewInvalidInput(fmt.Sprintf("unsupported spreadsheet %q", name), nil)
	}
}

// ReadXLSX reads raw (unformatted) cell values so numbers keep their full precision.
// An empty sheet name selects the first sheet.
func ReadXLSX(data []byte, sheet string, skipRows int) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, common.NewInvalidInput("spreadsheet is not a readable xlsx file", err)
	}
	defer func() { _ = f.Close() }()

	name, err := resolveSheet(f, sheet)
	if err != nil {
		return Table{}, err
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return fromRows(name, rows, skipRows)
}

func resolveSheet(f *excelize.File, sheet string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
	}
	if strings.TrimSpace(sheet) == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == sheet {
			return s, nil
		}
	}
	for _, s := range sheets {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(sheet)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (have %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
}

// ReadCSV sniffs ';' or ',' from the header line.
func ReadCSV(data []byte, skipRows int) (Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data, skipRows)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, common.NewInvalidInput("spreadsheet is not a readable csv file", err)
	}
	return fromRows("", rows, skipRows)
}

func sniffDelimiter(data []byte, skipRows int) rune {
	lines := strings.SplitN(string(data), "\n", skipRows+2)
	if len(lines) <= skipRows {
		return ','
	}
	header := lines[skipRows]
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func fromRows(sheet string, rows [][]string, skipRows int) (Table, error) {
	if skipRows < 0 {
		skipRows = 0
	}
	if len(rows) <= skipRows {
		return Table{}, fmt.Errorf("%w: expected at row %d", ErrNoHeader, skipRows+1)
	}
	header := make([]string, len(rows[skipRows]))
	for i, h := range rows[skipRows] {
		header[i] = strings.TrimSpace(h)
	}
	t := Table{Sheet: sheet, Headers: header}
	for _, row := range rows[skipRows+1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
