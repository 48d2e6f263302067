// Package analysis runs one order/catalog pair through extraction,
// reconciliation and aggregation.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/catalog"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/extract"
	"github.com/joseph-ayodele/aps-analyzer/internal/order"
	"github.com/joseph-ayodele/aps-analyzer/internal/pdftext"
	"github.com/joseph-ayodele/aps-analyzer/internal/reconcile"
)

// Input is one document pair. Names are used for format detection and logs only.
type Input struct {
	Modality    constants.Modality
	OrderName   string
	Order       []byte
	CatalogName string
	Catalog     []byte
}

// Result is the core's output contract: the reconciled table plus summary figures.
type Result struct {
	RunID    string
	Modality constants.Modality
	Status   constants.RunStatus
	Lines    []reconcile.Line
	Summary  reconcile.Summary
	Warnings []string
	Duration time.Duration
}

// Processor coordinates catalog load, order-line production and reconciliation.
// It holds no per-run state, so one Processor may serve concurrent runs.
type Processor struct {
	logger          *slog.Logger
	tokens          extract.TokenSource
	records         *extract.RecordExtractor
	catalogLoader   *catalog.Loader
	conference      *order.ConferenceReader
	defaultCategory string
}

func NewProcessor(
	logger *slog.Logger,
	tokens extract.TokenSource,
	records *extract.RecordExtractor,
	catalogLoader *catalog.Loader,
	conference *order.ConferenceReader,
	defaultCategory string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if records == nil {
		records = extract.NewRecordExtractor(0)
	}
	if defaultCategory == "" {
		defaultCategory = constants.DefaultCategory
	}
	return &Processor{
		logger:          logger,
		tokens:          tokens,
		records:         records,
		catalogLoader:   catalogLoader,
		conference:      conference,
		defaultCategory: defaultCategory,
	}
}

// NewProcessorFromConfig wires the production stages from configuration.
func NewProcessorFromConfig(cfg *common.Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return NewProcessor(
		logger,
		pdftext.NewExtractor(pdftext.Config{
			WordGap:    cfg.Extract.WordGap,
			LineJitter: cfg.Extract.LineJitter,
		}, logger),
		extract.NewRecordExtractor(cfg.Extract.DescriptionWindow),
		catalog.NewLoader(catalog.Config{
			Sheet:          cfg.Catalog.Sheet,
			KeyColumn:      cfg.Catalog.KeyColumn,
			PriceColumn:    cfg.Catalog.PriceColumn,
			CategoryColumn: cfg.Catalog.CategoryColumn,
		}, logger),
		order.NewConferenceReader(order.ConferenceConfig{
			Sheet:                cfg.Conference.Sheet,
			HeaderOffset:         cfg.Conference.HeaderOffset,
			MaterialColumn:       cfg.Conference.MaterialColumn,
			DescriptionColumn:    cfg.Conference.DescriptionColumn,
			QuantityColumn:       cfg.Conference.QuantityColumn,
			UnitColumn:           cfg.Conference.UnitColumn,
			SellerDiscountColumn: cfg.Conference.SellerDiscountColumn,
			TotalColumn:          cfg.Conference.TotalColumn,
			RecomputeTotal:       cfg.Conference.RecomputeTotal,
		}, logger),
		constants.DefaultCategory,
	)
}

// Run processes one document pair to completion. On any error no table is
// returned; an order with no extractable lines yields ErrExtractionEmpty.
func (p *Processor) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	ctx, runID := common.EnsureRunID(ctx)
	modality, err := constants.ParseModality(string(in.Modality))
	if err != nil {
		return nil, common.NewInvalidInput(err.Error(), nil)
	}
	in.Modality = modality
	log := p.logger.With("run_id", runID, "modality", string(modality))

	res, err := p.run(ctx, in, log)
	if err != nil {
		if common.IsRecoverable(err) {
			log.Warn("analysis.run.empty", "order", in.OrderName, "elapsed_ms", time.Since(start).Milliseconds())
		} else {
			log.Error("analysis.run.failed", "order", in.OrderName, "error", err)
		}
		return nil, err
	}

	res.RunID = runID
	res.Duration = time.Since(start)
	log.Info("analysis.run.ok",
		"lines", len(res.Lines),
		"unmatched", res.Summary.Totals.Unmatched,
		"order_total", res.Summary.Totals.OrderTotal.StringFixed(2),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (p *Processor) run(ctx context.Context, in Input, log *slog.Logger) (*Result, error) {
	if len(in.Catalog) == 0 {
		return nil, common.NewInvalidInput("price table is empty", nil)
	}
	if len(in.Order) == 0 {
		return nil, common.NewInvalidInput("order document is empty", nil)
	}

	// 1) catalog
	cat, err := p.catalogLoader.Load(in.CatalogName, in.Catalog)
	if err != nil {
		return nil, common.WrapError(err, "load catalog")
	}
	log.Debug("analysis.catalog.ok", "entries", cat.Len())

	// 2) order lines for the selected modality
	lines, err := p.orderLines(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, common.NewExtractionEmpty(fmt.Sprintf("no order lines found in %q", in.OrderName))
	}

	// 3) reconcile + aggregate
	reconciled := reconcile.Reconcile(lines, cat, p.defaultCategory)
	summary := reconcile.Summarize(reconciled)

	var warnings []string
	if dups := cat.Duplicates(); len(dups) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d duplicated codes in the price table; first row used", len(dups)))
	}
	if n := summary.Totals.Unmatched; n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d items not found in the price table; reference price set to 0", n))
	}

	return &Result{
		Modality: in.Modality,
		Status:   constants.RunStatusOK,
		Lines:    reconciled,
		Summary:  summary,
		Warnings: warnings,
	}, nil
}

func (p *Processor) orderLines(ctx context.Context, in Input) ([]order.OrderLine, error) {
	switch in.Modality {
	case constants.ModalityDocument:
		if in.OrderName != "" && constants.MapExtToFormat(filepath.Ext(in.OrderName)) != constants.PDF {
			return nil, common.NewInvalidInput(fmt.Sprintf("document modality expects a PDF, got %q", in.OrderName), nil)
		}
		pages, err := p.tokens.Pages(ctx, in.Order)
		if err != nil {
			return nil, common.WrapError(err, "read order document")
		}
		recs := p.records.ExtractDocument(pages)
		p.logger.Debug("analysis.extract.ok", "pages", len(pages), "records", len(recs))
		return order.FromCandidates(recs)
	case constants.ModalityConference:
		return p.conference.Read(in.OrderName, in.Order)
	default:
		return nil, common.NewInvalidInput(fmt.Sprintf("unsupported modality %q", in.Modality), nil)
	}
}
