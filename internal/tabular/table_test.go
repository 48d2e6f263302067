package tabular

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/tabular/tabulartest"
)

func TestReadXLSX(t *testing.T) {
	data := tabulartest.XLSX(t,
		tabulartest.Sheet{Name: "Precos", Rows: [][]any{
			{"Cod Sap", "Price"},
			{"10001-1", 100.5},
			{nil, nil},
			{"10002-2", "n/d"},
		}},
		tabulartest.Sheet{Name: "Conferencia", Rows: [][]any{
			{"Pedido 123"},
			{"Cliente X"},
			{" Material ", "Qtd"},
			{"10001-1", 2},
		}},
	)

	t.Run("first sheet by default", func(t *testing.T) {
		tbl, err := ReadXLSX(data, "", 0)
		require.NoError(t, err)
		assert.Equal(t, "Precos", tbl.Sheet)
		assert.Equal(t, 0, tbl.Column("cod sap"))
		assert.Equal(t, 1, tbl.Column("PRICE"))
		assert.Equal(t, -1, tbl.Column("Categoria"))
		require.Len(t, tbl.Rows, 2, "blank rows are dropped")
		assert.Equal(t, "100.5", Cell(tbl.Rows[0], 1))
		assert.Equal(t, "n/d", Cell(tbl.Rows[1], 1))
	})

	t.Run("named sheet with header offset", func(t *testing.T) {
		tbl, err := ReadXLSX(data, "Conferencia", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Material", "Qtd"}, tbl.Headers)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, "2", Cell(tbl.Rows[0], 1))
		assert.Equal(t, "", Cell(tbl.Rows[0], 5))
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := ReadXLSX(data, "Pedidos", 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSheetNotFound))
		assert.Contains(t, err.Error(), "Precos")
	})

	t.Run("offset beyond the sheet", func(t *testing.T) {
		_, err := ReadXLSX(data, "Conferencia", 10)
		assert.True(t, errors.Is(err, ErrNoHeader))
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := ReadXLSX([]byte("nope"), "", 0)
		assert.True(t, errors.Is(err, common.ErrInvalidInput))
	})
}

func TestReadCSV(t *testing.T) {
	t.Run("semicolon delimited with BOM", func(t *testing.T) {
		tbl, err := ReadCSV([]byte("\xef\xbb\xbfCod Sap;Price;Categoria\n10001-1;100,00;A\n"), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cod Sap", "Price", "Categoria"}, tbl.Headers)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, "100,00", Cell(tbl.Rows[0], 1))
	})

	t.Run("comma delimited", func(t *testing.T) {
		tbl, err := ReadCSV([]byte("Cod Sap,Price\n10001-1,100.00\n10002-2,7\n"), 0)
		require.NoError(t, err)
		assert.Len(t, tbl.Rows, 2)
	})
}

func TestReadDispatch(t *testing.T) {
	_, err := Read("precos.ods", nil, "", 0)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	tbl, err := Read("precos.CSV", []byte("a,b\n1,2\n"), "ignored", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Column("b"))
}
