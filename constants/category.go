package constants

import "strings"

// DefaultCategory is assigned to catalog entries when the price table has no
// category column, and to order lines that have no catalog match.
const DefaultCategory = "Geral"

// notAvailable holds the textual placeholders spreadsheets use for empty cells.
var notAvailable = map[string]struct{}{
	"":    {},
	"nan": {},
	"n/a": {},
	"na":  {},
	"-":   {},
}

// IsNotAvailable reports whether a cell value is a "not available" placeholder.
func IsNotAvailable(v string) bool {
	_, ok := notAvailable[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// CanonicalCategory trims a category label and falls back to DefaultCategory.
func CanonicalCategory(input string) string {
	c := strings.TrimSpace(input)
	if IsNotAvailable(c) {
		return DefaultCategory
	}
	return c
}
