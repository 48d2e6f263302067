package pdftext

import (
	"math"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/joseph-ayodele/aps-analyzer/internal/layout"
)

// assembleWords merges glyphs into words. A word ends at a whitespace glyph,
// a baseline change beyond jitter, or a horizontal gap (either direction)
// wider than gap. Tops are measured from the page's upper edge.
func assembleWords(glyphs []pdf.Text, height, gap, jitter float64) []layout.Token {
	var (
		out     []layout.Token
		b       strings.Builder
		cur     layout.Token
		lastY   float64
		lastEnd float64
		open    bool
	)

	flush := func() {
		if open && b.Len() > 0 {
			cur.Text = norm.NFC.String(b.String())
			out = append(out, cur)
		}
		b.Reset()
		open = false
	}

	for _, g := range glyphs {
		if open {
			d := g.X - lastEnd
			if math.Abs(g.Y-lastY) > jitter || d > gap || d < -gap {
				flush()
			}
		}
		for _, r := range g.S {
			if unicode.IsSpace(r) {
				flush()
				continue
			}
			if !open {
				cur = layout.Token{Top: height - (g.Y + g.FontSize), X: g.X}
				open = true
			}
			b.WriteRune(r)
		}
		lastY = g.Y
		lastEnd = g.X + g.W
	}
	flush()
	return out
}
