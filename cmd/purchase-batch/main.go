package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/analysis"
	"github.com/shinmonzen/purchasing-tracker/internal/common"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
	"github.com/shinmonzen/purchasing-tracker/internal/export"
	"github.com/shinmonzen/purchasing-tracker/internal/ingest"
	"github.com/shinmonzen/purchasing-tracker/internal/ocr"
	"github.com/shinmonzen/purchasing-tracker/internal/pipeline"
	"github.com/shinmonzen/purchasing-tracker/internal/repository"
	"github.com/shinmonzen/purchasing-tracker/internal/sales"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir   = flag.String("dir", "", "directory with invoice PDFs and sales CSVs (required)")
		out   = flag.String("out", "", "output XLSX file path (defaults to parent directory)")
		db    = flag.String("db", "", "SQLite database path (overrides DB_PATH)")
		inmem = flag.Bool("inmem", false, "use an in-memory SQLite database")
		from  = flag.String("from", "", "only export line items on or after this date (YYYY-MM-DD)")
		to    = flag.String("to", "", "only export line items on or before this date (YYYY-MM-DD)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "purchases.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "error", err)
	}

	cfg := common.LoadConfig()
	if *db != "" {
		cfg.Database.Path = *db
	}
	if *inmem {
		cfg.Database.Path = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	sqldb, err := repository.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(sqldb, logger)

	itemsRepo := repository.NewLineItemRepository(sqldb, logger)
	salesRepo := repository.NewSalesRepository(sqldb, logger)

	// Collect documents
	ingestor := ingest.NewIngestor(logger)
	docs, _, stats, err := ingestor.CollectDirectory(*dir)
	if err != nil {
		logger.Error("failed to collect directory", "error", err)
		os.Exit(1)
	}
	logger.Info("collection complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed)

	// Split PDFs (invoices) from CSVs (sales reports)
	var invoiceDocs []entity.RawDocument
	var salesDocs []entity.RawDocument
	for _, doc := range docs {
		switch constants.FormatForPath(doc.Filename) {
		case constants.PDF:
			invoiceDocs = append(invoiceDocs, doc)
		case constants.CSV:
			salesDocs = append(salesDocs, doc)
		}
	}

	// Invoice extraction
	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:  cfg.OCR.Pdftotext,
		Pdftoppm:   cfg.OCR.Pdftoppm,
		Tesseract:  cfg.OCR.Tesseract,
		Lang:       cfg.OCR.Lang,
		DPI:        cfg.OCR.DPI,
		MaxPages:   cfg.OCR.MaxPages,
		Preprocess: cfg.OCR.Preprocess,
	}, logger)
	processor := pipeline.NewProcessor(extractor, logger)

	batchID := uuid.New()
	extractions, failures, pstats := processor.ProcessBatch(ctx, invoiceDocs)
	for _, f := range failures {
		printError("Warning: %s: %s\n", f.Filename, f.Err)
	}

	var allItems []entity.LineItem
	for _, ext := range extractions {
		allItems = append(allItems, ext.Items...)
	}
	if err := itemsRepo.SaveBatch(ctx, batchID, allItems); err != nil {
		logger.Error("failed to save line items", "error", err)
		os.Exit(1)
	}

	// Sales reports
	salesParser := sales.NewParser(logger)
	var allSales []entity.SalesRecord
	for _, doc := range salesDocs {
		records, err := salesParser.Parse(bytes.NewReader(doc.Content))
		if err != nil {
			printError("Warning: %s: %v\n", doc.Filename, err)
			continue
		}
		allSales = append(allSales, records...)
	}
	if err := salesRepo.Save(ctx, allSales); err != nil {
		logger.Error("failed to save sales records", "error", err)
		os.Exit(1)
	}

	// Optional date window over everything stored, not just this batch.
	exportItems := allItems
	if *from != "" || *to != "" {
		lo, hi := *from, *to
		if lo == "" {
			lo = "0000-01-01"
		}
		if hi == "" {
			hi = "9999-12-31"
		}
		exportItems, err = itemsRepo.ListByDateRange(ctx, lo, hi)
		if err != nil {
			logger.Error("failed to load line items for export", "error", err)
			os.Exit(1)
		}
	}

	// Analysis + export
	evals := analysis.NewEvaluator(logger).Evaluate(exportItems, allSales)

	exporter := export.NewService(cfg.Export.SheetName, logger)
	xlsxBytes, err := exporter.LineItemsXLSX(exportItems, evals)
	if err != nil {
		logger.Error("failed to build workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	jsonPath := strings.TrimSuffix(*out, filepath.Ext(*out)) + ".json"
	jsonBytes, err := exporter.LineItemsJSON(exportItems)
	if err != nil {
		logger.Error("failed to build json export", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(jsonPath, jsonBytes, 0644); err != nil {
		logger.Error("failed to write json export", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"batch_id", batchID.String(),
		"invoices", len(invoiceDocs),
		"parsed", pstats.Processed,
		"empty", pstats.Empty,
		"failures", pstats.Failed,
		"line_items", len(allItems),
		"sales_records", len(allSales),
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Invoices processed: %d\n", pstats.Processed)
	fmt.Printf("- Line items: %d\n", len(exportItems))
	fmt.Printf("- Sales records: %d\n", len(allSales))
	fmt.Printf("- Failures: %d\n", pstats.Failed)
	fmt.Printf("- Output: %s\n", *out)
}
