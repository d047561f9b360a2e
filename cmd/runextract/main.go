// runextract recovers and parses a single invoice PDF, dumping the result to
// stdout. Debug aid for tuning the vendor grammars against a new scan.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/shinmonzen/purchasing-tracker/internal/common"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
	"github.com/shinmonzen/purchasing-tracker/internal/ocr"
	"github.com/shinmonzen/purchasing-tracker/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <invoice.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "error", err)
	}
	cfg := common.LoadConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

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

	start := time.Now()
	ext, err := processor.ProcessDocument(ctx, entity.RawDocument{
		Filename: filepath.Base(path),
		Content:  content,
	})
	dur := time.Since(start)

	if err != nil {
		logger.Error("extraction failed", "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"vendor", string(ext.Vendor),
		"method", ext.Method,
		"items", len(ext.Items),
		"total", ext.Report.Total.String(),
		"fallback_used", ext.Report.FallbackUsed,
		"duration_ms", dur.Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ext.Items); err != nil {
		fmt.Fprintf(os.Stderr, "encode items: %v\n", err)
		os.Exit(1)
	}
}
