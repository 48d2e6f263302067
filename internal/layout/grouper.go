// Package layout reconstructs text lines from positioned word tokens.
//
// Grouping is a heuristic: tokens share a line iff their top coordinates
// round to the same integer unit. It tolerates sub-unit jitter but splits
// wrapped cells into separate lines.
package layout

import (
	"math"
	"sort"
	"strings"
)

// Token is a single positioned word from a page's text layer.
type Token struct {
	Text string
	Top  float64 // distance from the top edge of the page
	X    float64 // left edge
}

// TextLine is the ordered run of tokens sharing one rounded vertical bucket.
type TextLine struct {
	Top    int
	Tokens []Token
}

// Text joins the line's token texts with single spaces.
func (l TextLine) Text() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Bucket returns the line key for a vertical coordinate. Halves round to
// even, matching the rounding used by the reference documents' tooling.
func Bucket(top float64) int {
	return int(math.RoundToEven(top))
}

// Group clusters one page's tokens into lines ordered top to bottom.
// Within a line tokens run left to right; ties on X keep input order.
func Group(tokens []Token) []TextLine {
	byTop := make(map[int][]Token)
	for _, t := range tokens {
		k := Bucket(t.Top)
		byTop[k] = append(byTop[k], t)
	}

	keys := make([]int, 0, len(byTop))
	for k := range byTop {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	lines := make([]TextLine, 0, len(keys))
	for _, k := range keys {
		row := byTop[k]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		lines = append(lines, TextLine{Top: k, Tokens: row})
	}
	return lines
}
