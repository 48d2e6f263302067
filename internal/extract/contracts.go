package extract

import (
	"context"

	"github.com/joseph-ayodele/aps-analyzer/internal/layout"
)

// TokenSource is Stage 1: document bytes -> positioned tokens, one slice per page.
type TokenSource interface {
	Pages(ctx context.Context, data []byte) ([][]layout.Token, error)
}

// CandidateRecord is one order line recovered from a page, numeric fields still raw.
type CandidateRecord struct {
	Page        int    // 1-based page number
	Top         int    // line bucket of the code line
	Code        string // product code, e.g. "10001-1"
	Description string // text of the nearest following line, "" when none
	Quantity    string
	Unit        string
	Total       string
}
