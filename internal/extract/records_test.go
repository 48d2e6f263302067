package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/aps-analyzer/internal/layout"
)

// line builds one text line from space-separated words at the given top.
func line(top float64, words ...string) []layout.Token {
	out := make([]layout.Token, len(words))
	for i, w := range words {
		out[i] = layout.Token{Text: w, Top: top, X: float64(i * 40)}
	}
	return out
}

func page(lines ...[]layout.Token) []layout.Token {
	var out []layout.Token
	for _, l := range lines {
		out = append(out, l...)
	}
	return out
}

func TestExtractPage(t *testing.T) {
	x := NewRecordExtractor(0)

	t.Run("emits record with description from the following line", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(90, "Material", "Qtd", "Unit", "Total"),
			line(100, "10001-1", "UN", "2,00", "80,00", "160,00"),
			line(110, "PARAFUSO", "SEXTAVADO"),
		)})

		require.Len(t, recs, 1)
		r := recs[0]
		assert.Equal(t, 1, r.Page)
		assert.Equal(t, "10001-1", r.Code)
		assert.Equal(t, "PARAFUSO SEXTAVADO", r.Description)
		assert.Equal(t, "2,00", r.Quantity)
		assert.Equal(t, "80,00", r.Unit)
		assert.Equal(t, "160,00", r.Total)
	})

	t.Run("takes only the first of two lines inside the window", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(100, "10001-1", "2,00", "80,00", "160,00"),
			line(106, "PRIMEIRA", "LINHA"),
			line(112, "SEGUNDA", "LINHA"),
		)})
		require.Len(t, recs, 1)
		assert.Equal(t, "PRIMEIRA LINHA", recs[0].Description)
	})

	t.Run("window upper bound is inclusive", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(100, "10001-1", "2,00", "80,00", "160,00"),
			line(115, "NO", "LIMITE"),
		)})
		require.Len(t, recs, 1)
		assert.Equal(t, "NO LIMITE", recs[0].Description)
	})

	t.Run("description is empty when the next line is outside the window", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(100, "10001-1", "2,00", "80,00", "160,00"),
			line(116, "LONGE"),
		)})
		require.Len(t, recs, 1)
		assert.Equal(t, "", recs[0].Description)
	})

	t.Run("skips code lines with fewer than three amounts", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(100, "10001-1", "2,00", "80,00"),
			line(110, "DESCRICAO"),
		)})
		assert.Empty(t, recs)
	})

	t.Run("uses only the first three amounts", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(100, "10002-3", "1.000,00", "1,50", "1.500,00", "12,00", "9,99"),
		)})
		require.Len(t, recs, 1)
		assert.Equal(t, "1.000,00", recs[0].Quantity)
		assert.Equal(t, "1,50", recs[0].Unit)
		assert.Equal(t, "1.500,00", recs[0].Total)
	})

	t.Run("code must start the line", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{page(
			line(100, "Item", "10001-1", "2,00", "80,00", "160,00"),
			line(120, "1234-5", "2,00", "80,00", "160,00"),
		)})
		assert.Empty(t, recs)
	})

	t.Run("content stream order does not matter", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{{
			{Text: "2,00", Top: 100, X: 300},
			{Text: "80,00", Top: 100, X: 350},
			{Text: "160,00", Top: 100, X: 400},
			{Text: "10001-1", Top: 100.2, X: 50},
			{Text: "PARAFUSO", Top: 110, X: 50},
		}})
		require.Len(t, recs, 1)
		assert.Equal(t, "10001-1", recs[0].Code)
		assert.Equal(t, "2,00", recs[0].Quantity)
		assert.Equal(t, "80,00", recs[0].Unit)
		assert.Equal(t, "160,00", recs[0].Total)
		assert.Equal(t, "PARAFUSO", recs[0].Description)
	})

	t.Run("pages are processed independently", func(t *testing.T) {
		recs := x.ExtractDocument([][]layout.Token{
			page(line(780, "10001-1", "1,00", "10,00", "10,00")),
			page(
				line(50, "CONTINUA", "PAGINA"),
				line(100, "20002-2", "3,00", "5,00", "15,00"),
				line(108, "ARRUELA"),
			),
		})
		require.Len(t, recs, 2)
		assert.Equal(t, 1, recs[0].Page)
		assert.Equal(t, "", recs[0].Description)
		assert.Equal(t, 2, recs[1].Page)
		assert.Equal(t, "ARRUELA", recs[1].Description)
	})

	t.Run("custom window", func(t *testing.T) {
		narrow := NewRecordExtractor(5)
		recs := narrow.ExtractDocument([][]layout.Token{page(
			line(100, "10001-1", "2,00", "80,00", "160,00"),
			line(108, "FORA"),
		)})
		require.Len(t, recs, 1)
		assert.Equal(t, "", recs[0].Description)
	})
}
