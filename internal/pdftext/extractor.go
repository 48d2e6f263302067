package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/layout"
)

// defaultPageHeight is US Letter, used when a page carries no usable MediaBox.
const defaultPageHeight = 792.0

type Config struct {
	WordGap    float64 // horizontal gap (pt) that starts a new word, default 1.5
	LineJitter float64 // baseline drift (pt) tolerated inside a word, default 1.0
}

// Extractor reads the text layer of a PDF into positioned word tokens.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.WordGap <= 0 {
		cfg.WordGap = 1.5
	}
	if cfg.LineJitter <= 0 {
		cfg.LineJitter = 1.0
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Pages returns one token slice per page, in page order. Pages without a text
// layer yield an empty slice rather than an error.
func (e *Extractor) Pages(ctx context.Context, data []byte) ([][]layout.Token, error) {
	start := time.Now()
	r, err := openReader(data)
	if err != nil {
		e.logger.Error("pdftext.open.failed", "bytes", len(data), "error", err)
		return nil, common.NewInvalidInput("order document is not a readable PDF", err)
	}

	total := r.NumPage()
	pages := make([][]layout.Token, 0, total)
	tokens := 0
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		glyphs, err := pageGlyphs(p)
		if err != nil {
			e.logger.Error("pdftext.page.failed", "page", i, "error", err)
			return nil, common.NewInvalidInput(fmt.Sprintf("page %d has an unreadable text layer", i), err)
		}
		words := assembleWords(glyphs, pageHeight(p.V), e.cfg.WordGap, e.cfg.LineJitter)
		tokens += len(words)
		pages = append(pages, words)
	}

	e.logger.Debug("pdftext.pages.ok",
		"pages", len(pages),
		"tokens", tokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}

// openReader wraps pdf.NewReader, which panics on some malformed trailers.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// pageGlyphs wraps Page.Content, which panics on broken content streams.
func pageGlyphs(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			texts, err = nil, fmt.Errorf("malformed content stream: %v", rec)
		}
	}()
	return p.Content().Text, nil
}

// pageHeight reads the MediaBox, walking up the page tree for inherited boxes.
func pageHeight(v pdf.Value) float64 {
	node := v
	for depth := 0; depth < 32 && !node.IsNull(); depth++ {
		box := node.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h
			}
		}
		node = node.Key("Parent")
	}
	return defaultPageHeight
}
