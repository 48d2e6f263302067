package report

// Schema returns the report's JSON-Schema as a generic map.
func Schema() map[string]any {
	totals := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"items":           countProp(),
			"unmatched":       countProp(),
			"order_total":     decimalProp(),
			"table_total":     decimalProp(),
			"total_discount":  decimalProp(),
			"seller_discount": decimalProp(),
			"discount_pct":    decimalProp(),
			"margin_pct":      decimalProp(),
		},
		"required": []string{"items", "unmatched", "order_total", "table_total", "total_discount", "discount_pct", "margin_pct"},
	}

	category := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"category":          map[string]any{"type": "string", "minLength": 1},
			"items":             map[string]any{"type": "integer", "minimum": 1},
			"total":             decimalProp(),
			"discount":          decimalProp(),
			"seller_discount":   decimalProp(),
			"mean_discount_pct": decimalProp(),
		},
		"required": []string{"category", "items", "total", "discount", "mean_discount_pct"},
	}

	line := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"code":            map[string]any{"type": "string", "minLength": 1},
			"description":     map[string]any{"type": "string"},
			"category":        map[string]any{"type": "string", "minLength": 1},
			"matched":         map[string]any{"type": "boolean"},
			"quantity":        decimalProp(),
			"unit":            decimalProp(),
			"total":           decimalProp(),
			"reference_price": decimalProp(),
			"unit_discount":   decimalProp(),
			"line_discount":   decimalProp(),
			"discount_pct":    decimalProp(),
			"margin_pct":      decimalProp(),
			"seller_discount": decimalProp(), // conference only
		},
		"required": []string{
			"code", "category", "matched", "quantity", "unit", "total",
			"reference_price", "unit_discount", "line_discount", "discount_pct", "margin_pct",
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"run_id":     map[string]any{"type": "string"},
			"modality":   map[string]any{"type": "string", "enum": []string{"document", "conference"}},
			"status":     map[string]any{"type": "string", "enum": []string{"ok", "empty", "failed"}},
			"warnings":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"totals":     totals,
			"categories": map[string]any{"type": "array", "items": category},
			"lines":      map[string]any{"type": "array", "items": line},
		},
		"required": []string{"run_id", "modality", "status", "totals", "categories", "lines"},
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^-?\d+\.\d{2}$`,
	}
}

func countProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}
