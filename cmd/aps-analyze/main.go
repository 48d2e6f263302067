package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joseph-ayodele/aps-analyzer/constants"
	"github.com/joseph-ayodele/aps-analyzer/internal/analysis"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/export"
	"github.com/joseph-ayodele/aps-analyzer/internal/report"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitEmpty = 3
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		catalogPath = flag.String("catalog", "", "price table (.xlsx or .csv) (required)")
		orderPath   = flag.String("order", "", "purchase order PDF or conference spreadsheet (required)")
		modalityArg = flag.String("modality", "", "document|conference (default: from the order's extension)")
		outPath     = flag.String("out", "", "write the XLSX analysis to this path")
		jsonPath    = flag.String("json", "", "write the JSON report to this path (- for stdout)")
		timeout     = flag.Duration("timeout", 2*time.Minute, "abort the run after this long")
	)
	flag.Parse()

	if *catalogPath == "" || *orderPath == "" {
		printError("Error: --catalog and --order are required\n")
		flag.Usage()
		return exitUsage
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		return exitError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	modality, err := resolveModality(*modalityArg, *orderPath)
	if err != nil {
		printError("Error: %v\n", err)
		return exitUsage
	}

	catalogData, err := os.ReadFile(*catalogPath)
	if err != nil {
		printError("Error: read catalog: %v\n", err)
		return exitError
	}
	orderData, err := os.ReadFile(*orderPath)
	if err != nil {
		printError("Error: read order: %v\n", err)
		return exitError
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	proc := analysis.NewProcessorFromConfig(cfg, logger)
	res, err := proc.Run(ctx, analysis.Input{
		Modality:    modality,
		OrderName:   filepath.Base(*orderPath),
		Order:       orderData,
		CatalogName: filepath.Base(*catalogPath),
		Catalog:     catalogData,
	})
	if err != nil {
		printError("%s\n", common.UserMessage(err))
		if errors.Is(err, common.ErrExtractionEmpty) {
			return exitEmpty
		}
		return exitError
	}

	printSummary(res)

	if *jsonPath != "" {
		body, err := report.Marshal(report.Build(res))
		if err != nil {
			printError("Error: %v\n", err)
			return exitError
		}
		if *jsonPath == "-" {
			fmt.Println(string(body))
		} else if err := os.WriteFile(*jsonPath, body, 0o644); err != nil {
			printError("Error: write report: %v\n", err)
			return exitError
		}
	}

	if *outPath != "" {
		xlsx, err := export.NewService(cfg.Export.Sheet, logger).WriteXLSX(res)
		if err != nil {
			printError("Error: %v\n", err)
			return exitError
		}
		if err := os.WriteFile(*outPath, xlsx, 0o644); err != nil {
			printError("Error: write xlsx: %v\n", err)
			return exitError
		}
		fmt.Printf("Analysis written to %s\n", *outPath)
	}
	return exitOK
}

// resolveModality prefers the explicit flag and otherwise infers it from the
// order file: spreadsheets are conference exports.
func resolveModality(arg, orderPath string) (constants.Modality, error) {
	if arg != "" {
		return constants.ParseModality(arg)
	}
	if constants.IsTabularExt(filepath.Ext(orderPath)) {
		return constants.ModalityConference, nil
	}
	return constants.ModalityDocument, nil
}

func printSummary(res *analysis.Result) {
	t := res.Summary.Totals
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "Itens\t%d\n", t.Items)
	fmt.Fprintf(w, "Desconto Total\t%s\t(%s)\n", report.FormatBRL(t.TotalDiscount), report.FormatPct(t.DiscountPct))
	fmt.Fprintf(w, "Total Pedido\t%s\n", report.FormatBRL(t.OrderTotal))
	fmt.Fprintf(w, "Preço Tabela Total\t%s\n", report.FormatBRL(t.TableTotal))
	fmt.Fprintf(w, "Margem\t%s\n", report.FormatPct(t.MarginPct))
	if res.Modality == constants.ModalityConference {
		fmt.Fprintf(w, "Desconto Vendedor\t%s\n", report.FormatBRL(t.SellerDiscount))
	}
	for _, c := range res.Summary.Categories {
		fmt.Fprintf(w, "  %s\t%d itens\t%s\tdesc. médio %s\n", c.Category, c.Items, report.FormatBRL(c.Total), report.FormatPct(c.MeanDiscountPct))
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "! %s\n", warn)
	}
}
