// Package catalog loads the price reference table keyed by product code.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is one price-table row.
type Entry struct {
	Code     string
	Price    *decimal.Decimal // nil when the price cell was not numeric
	Category string
	Row      int // 1-based data row in the source table
}

// ReferencePrice returns the price, or zero when it is missing.
func (e Entry) ReferencePrice() decimal.Decimal {
	if e.Price == nil {
		return decimal.Zero
	}
	return *e.Price
}

// Catalog indexes entries by trimmed code. When a code repeats, the first
// row wins and later rows are kept only for reporting.
type Catalog struct {
	entries    []Entry
	index      map[string]int
	duplicates []string
}

func New(entries []Entry) *Catalog {
	c := &Catalog{entries: entries, index: make(map[string]int, len(entries))}
	seen := map[string]bool{}
	for i, e := range entries {
		key := NormalizeKey(e.Code)
		if _, ok := c.index[key]; ok {
			if !seen[key] {
				c.duplicates = append(c.duplicates, key)
				seen[key] = true
			}
			continue
		}
		c.index[key] = i
	}
	return c
}

// NormalizeKey is the join-key form shared by catalog and order lines.
func NormalizeKey(code string) string {
	return strings.TrimSpace(code)
}

// Lookup returns the first entry for code.
func (c *Catalog) Lookup(code string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.index[NormalizeKey(code)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns all rows in source order, duplicates included.
func (c *Catalog) Entries() []Entry { return c.entries }

// Duplicates lists codes that appear more than once, in first-seen order.
func (c *Catalog) Duplicates() []string { return c.duplicates }
