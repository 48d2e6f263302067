package extract

import (
	"regexp"

	"github.com/joseph-ayodele/aps-analyzer/internal/layout"
)

// DefaultDescriptionWindow is how far below a code line (in page units) the
// description line may sit.
const DefaultDescriptionWindow = 15.0

// minAmounts is the number of decimal fields a code line must carry: quantity, unit, total.
const minAmounts = 3

var (
	reCode   = regexp.MustCompile(`^(\d{5,}-\d)`)
	reAmount = regexp.MustCompile(`\d+[\d.]*,\d+`)
)

// RecordExtractor finds order lines in grouped page text.
type RecordExtractor struct {
	window float64
}

func NewRecordExtractor(window float64) *RecordExtractor {
	if window <= 0 {
		window = DefaultDescriptionWindow
	}
	return &RecordExtractor{window: window}
}

// ExtractDocument groups every page's tokens into lines and extracts records
// page by page. Lines never span pages.
func (x *RecordExtractor) ExtractDocument(pages [][]layout.Token) []CandidateRecord {
	var out []CandidateRecord
	for i, tokens := range pages {
		out = append(out, x.ExtractPage(i+1, layout.Group(tokens))...)
	}
	return out
}

// ExtractPage scans lines (ascending top) for code lines. A code line becomes a
// record only when it carries at least three decimal amounts; extra amounts
// are ignored.
func (x *RecordExtractor) ExtractPage(page int, lines []layout.TextLine) []CandidateRecord {
	var out []CandidateRecord
	for i, line := range lines {
		text := line.Text()
		m := reCode.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amounts := reAmount.FindAllString(text, -1)
		if len(amounts) < minAmounts {
			continue
		}
		out = append(out, CandidateRecord{
			Page:        page,
			Top:         line.Top,
			Code:        m[1],
			Description: x.description(lines, i),
			Quantity:    amounts[0],
			Unit:        amounts[1],
			Total:       amounts[2],
		})
	}
	return out
}

// description returns the text of the first line after lines[i] whose top lies
// in (top, top+window]. Later candidates in the window are not considered.
func (x *RecordExtractor) description(lines []layout.TextLine, i int) string {
	top := float64(lines[i].Top)
	for _, next := range lines[i+1:] {
		t := float64(next.Top)
		if t <= top {
			continue
		}
		if t <= top+x.window {
			return next.Text()
		}
		break
	}
	return ""
}
