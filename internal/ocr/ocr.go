package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang     string // tesseract language pack, default "jpn+eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 300
	MaxPages int    // 0 = no limit

	// Preprocess runs rasterized pages through grayscale/contrast/sharpen
	// before recognition. Helps with faint thermal-print scans.
	Preprocess bool
}

type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr" | "" when nothing was recovered
	Language string
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "jpn+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Recover extracts the full text of one invoice document. The text layer is
// tried first; scanned documents fall back to rasterize-then-recognize.
// Both strategies failing is not an error: the result carries empty text and
// the warnings, and the caller skips the document.
func (e *Extractor) Recover(ctx context.Context, doc entity.RawDocument) (Result, error) {
	start := time.Now()

	tmp, err := os.CreateTemp("", "pt-doc-*.pdf")
	if err != nil {
		return Result{}, fmt.Errorf("create temp document: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("failed to remove temp document", "path", tmpPath, "error", err)
		}
	}()

	if _, err := tmp.Write(doc.Content); err != nil {
		_ = tmp.Close()
		return Result{}, fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("close temp document: %w", err)
	}

	var warnings []string

	text, pages, warns, err := e.pdfToText(ctx, tmpPath)
	warnings = append(warnings, warns...)
	if err != nil {
		e.logger.Warn("text-layer extraction failed, falling back to ocr",
			"filename", doc.Filename, "error", err)
		warnings = append(warnings, err.Error())
		text = ""
	}

	if strings.TrimSpace(text) != "" {
		e.logger.Debug("recovered text layer",
			"filename", doc.Filename, "pages", pages, "chars", len(text))
		return Result{
			Text:     text,
			Pages:    pages,
			Method:   "pdf-text",
			Language: e.cfg.Lang,
			Duration: time.Since(start),
			Warnings: warnings,
		}, nil
	}

	text, pages, warns, err = e.pdfToOCR(ctx, tmpPath)
	warnings = append(warnings, warns...)
	if err != nil {
		e.logger.Warn("ocr fallback failed",
			"filename", doc.Filename, "error", err)
		warnings = append(warnings, err.Error())
		text = ""
	}

	if strings.TrimSpace(text) == "" {
		e.logger.Warn("no text recovered from document", "filename", doc.Filename)
		return Result{
			Language: e.cfg.Lang,
			Duration: time.Since(start),
			Warnings: warnings,
		}, nil
	}

	e.logger.Debug("recovered text via ocr",
		"filename", doc.Filename, "pages", pages, "chars", len(text))
	return Result{
		Text:     Normalize(text),
		Pages:    pages,
		Method:   "pdf-ocr",
		Language: e.cfg.Lang,
		Duration: time.Since(start),
		Warnings: warnings,
	}, nil
}
