package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/tabular/tabulartest"
)

func TestLoad(t *testing.T) {
	loader := NewLoader(Config{CategoryColumn: "Categoria"}, nil)

	t.Run("reads key, price and category", func(t *testing.T) {
		data := tabulartest.XLSX(t, tabulartest.Sheet{Name: "Tabela", Rows: [][]any{
			{"Cod Sap", "Descricao", "Price", "Categoria"},
			{" 10001-1 ", "PARAFUSO", 100.0, "A"},
			{"10002-2", "PORCA", "sob consulta", "B"},
			{"10003-3", "ARRUELA", "12,50", ""},
		}})

		c, err := loader.Load("precos.xlsx", data)
		require.NoError(t, err)
		require.Equal(t, 3, c.Len())

		e, ok := c.Lookup("10001-1")
		require.True(t, ok)
		assert.Equal(t, "10001-1", e.Code)
		assert.True(t, e.ReferencePrice().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "A", e.Category)

		e, ok = c.Lookup("10002-2")
		require.True(t, ok)
		assert.Nil(t, e.Price, "non-numeric price is missing, not an error")
		assert.True(t, e.ReferencePrice().IsZero())

		e, _ = c.Lookup("10003-3")
		assert.True(t, e.ReferencePrice().Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, constants.DefaultCategory, e.Category)
	})

	t.Run("defaults the category when the column is absent", func(t *testing.T) {
		data := tabulartest.XLSX(t, tabulartest.Sheet{Name: "Tabela", Rows: [][]any{
			{"Cod Sap", "Price"},
			{"10001-1", 100},
		}})
		c, err := loader.Load("precos.xlsx", data)
		require.NoError(t, err)
		e, ok := c.Lookup(" 10001-1")
		require.True(t, ok)
		assert.Equal(t, constants.DefaultCategory, e.Category)
	})

	t.Run("first duplicate wins", func(t *testing.T) {
		data := []byte("Cod Sap;Price\n10001-1;100,00\n10001-1;90,00\n")
		c, err := loader.Load("precos.csv", data)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []string{"10001-1"}, c.Duplicates())
		e, _ := c.Lookup("10001-1")
		assert.True(t, e.ReferencePrice().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 1, e.Row)
	})

	t.Run("missing required columns is a parse error", func(t *testing.T) {
		_, err := loader.Load("precos.csv", []byte("Codigo;Price\n1;2\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrParse))
		assert.Contains(t, err.Error(), "Cod Sap")

		_, err = loader.Load("precos.csv", []byte("Cod Sap;Preco\n1;2\n"))
		assert.True(t, errors.Is(err, common.ErrParse))
		assert.Contains(t, err.Error(), "Price")
	})

	t.Run("skips rows without a key", func(t *testing.T) {
		c, err := loader.Load("precos.csv", []byte("Cod Sap,Price\nnan,3\n10001-1,4\n"))
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLookupOnNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup("10001-1")
	assert.False(t, ok)
}
