package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/analysis"
	"github.com/joseph-ayodele/aps-analyzer/internal/catalog"
	"github.com/joseph-ayodele/aps-analyzer/internal/order"
	"github.com/joseph-ayodele/aps-analyzer/internal/reconcile"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func result() *analysis.Result {
	price := dec("33.33")
	seller := dec("1.5")
	cat := catalog.New([]catalog.Entry{{Code: "10001-1", Price: &price, Category: "A"}})
	lines := reconcile.Reconcile([]order.OrderLine{
		{Code: "10001-1", Quantity: dec("3"), Unit: dec("30"), Total: dec("90"), SellerDiscount: &seller, Source: constants.ModalityConference},
		{Code: "99999-9", Quantity: dec("1"), Unit: dec("10"), Total: dec("10"), Source: constants.ModalityConference},
	}, cat, "")
	return &analysis.Result{
		RunID:    "run-1",
		Modality: constants.ModalityConference,
		Status:   constants.RunStatusOK,
		Lines:    lines,
		Summary:  reconcile.Summarize(lines),
	}
}

func TestBuild(t *testing.T) {
	r := Build(result())

	assert.Equal(t, "conference", r.Modality)
	assert.Equal(t, "ok", r.Status)
	assert.NotNil(t, r.Warnings)
	require.Len(t, r.Lines, 2)

	first := r.Lines[0]
	assert.Equal(t, "33.33", first.ReferencePrice)
	assert.Equal(t, "3.33", first.UnitDiscount)
	assert.Equal(t, "9.99", first.LineDiscount)
	assert.Equal(t, "9.99", first.DiscountPct)
	require.NotNil(t, first.SellerDiscount)
	assert.Equal(t, "1.50", *first.SellerDiscount)

	assert.Nil(t, r.Lines[1].SellerDiscount)
	assert.Equal(t, "0.00", r.Lines[1].ReferencePrice)
	assert.Equal(t, "0.00", r.Lines[1].DiscountPct, "zero reference price yields zero ratio")

	assert.Equal(t, "100.00", r.Totals.OrderTotal)
	assert.Equal(t, 1, r.Totals.Unmatched)
	require.Len(t, r.Categories, 2)
	assert.Equal(t, "A", r.Categories[0].Category)
	assert.Equal(t, constants.DefaultCategory, r.Categories[1].Category)
}

func TestMarshalValidates(t *testing.T) {
	b, err := Marshal(Build(result()))
	require.NoError(t, err)
	require.NoError(t, Validate(b))

	var back Report
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "run-1", back.RunID)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Report)
	}{
		{"unknown modality", func(r *Report) { r.Modality = "fax" }},
		{"amount without two decimals", func(r *Report) { r.Totals.OrderTotal = "100" }},
		{"locale formatted amount", func(r *Report) { r.Lines[0].Total = "1.234,56" }},
		{"empty code", func(r *Report) { r.Lines[0].Code = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Build(result())
			tc.mutate(&r)
			b, err := json.Marshal(r)
			require.NoError(t, err)
			assert.Error(t, Validate(b))

			_, err = Marshal(r)
			assert.Error(t, err)
		})
	}

	assert.Error(t, Validate([]byte("{")))
}

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"12.5":      "R$ 12,50",
		"999.999":   "R$ 1.000,00",
		"1234.56":   "R$ 1.234,56",
		"1234567.8": "R$ 1.234.567,80",
		"-19.9":     "R$ -19,90",
		"-0.001":    "R$ 0,00",
		"100000":    "R$ 100.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBRL(dec(in)), in)
	}
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "12.86%", FormatPct(dec("12.857142")))
	assert.Equal(t, "-25.00%", FormatPct(dec("-25")))
}
