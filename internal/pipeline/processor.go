package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
	"github.com/shinmonzen/purchasing-tracker/internal/invoice"
	"github.com/shinmonzen/purchasing-tracker/internal/ocr"
)

// TextRecoverer is the text-recovery capability consumed by the processor.
// Satisfied by *ocr.Extractor; stubbed in tests.
type TextRecoverer interface {
	Recover(ctx context.Context, doc entity.RawDocument) (ocr.Result, error)
}

// Extraction is the per-document result handed to storage/presentation.
type Extraction struct {
	Filename string
	Vendor   invoice.Vendor
	Method   string
	Items    []entity.LineItem
	Report   invoice.Report
}

// BatchStats aggregates a batch run.
type BatchStats struct {
	Processed uint32
	Empty     uint32
	Failed    uint32
	Items     uint32
}

// FileFailure records one skipped document.
type FileFailure struct {
	Filename string
	Err      string
}

// Processor runs the extraction core document-at-a-time: recover text,
// classify the vendor, dispatch to the registered grammar.
type Processor struct {
	recoverer TextRecoverer
	grammars  map[invoice.Vendor]invoice.Grammar
	logger    *slog.Logger
}

func NewProcessor(recoverer TextRecoverer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		recoverer: recoverer,
		grammars:  invoice.Registry(logger),
		logger:    logger,
	}
}

// ProcessDocument extracts line items from one invoice document. A document
// that yields no text or no recognizable vendor produces an empty Extraction
// with a nil error; only unexpected faults return an error.
func (p *Processor) ProcessDocument(ctx context.Context, doc entity.RawDocument) (Extraction, error) {
	res, err := p.recoverer.Recover(ctx, doc)
	if err != nil {
		return Extraction{Filename: doc.Filename}, fmt.Errorf("recover text: %w", err)
	}

	ext := Extraction{Filename: doc.Filename, Method: res.Method}
	if res.Text == "" {
		p.logger.Warn("processor.empty_text", "filename", doc.Filename)
		return ext, nil
	}

	ext.Vendor = invoice.Classify(doc.Filename, res.Text)
	grammar, ok := p.grammars[ext.Vendor]
	if !ok {
		p.logger.Warn("processor.unknown_vendor", "filename", doc.Filename)
		return ext, nil
	}

	ext.Items, ext.Report = grammar.Parse(res.Text)
	p.logger.Info("processor.parse.ok",
		"filename", doc.Filename,
		"vendor", string(ext.Vendor),
		"method", res.Method,
		"items", len(ext.Items),
		"total", ext.Report.Total.String(),
	)
	return ext, nil
}

// ProcessBatch runs every document in order. Failures are isolated: a fault
// in one document is logged against its filename and never aborts siblings.
func (p *Processor) ProcessBatch(ctx context.Context, docs []entity.RawDocument) ([]Extraction, []FileFailure, BatchStats) {
	var (
		results  []Extraction
		failures []FileFailure
		stats    BatchStats
	)
	for _, doc := range docs {
		ext, err := p.ProcessDocument(ctx, doc)
		if err != nil {
			p.logger.Error("processor.document.failed",
				"filename", doc.Filename, "error", err)
			failures = append(failures, FileFailure{Filename: doc.Filename, Err: err.Error()})
			stats.Failed++
			continue
		}
		results = append(results, ext)
		if len(ext.Items) == 0 {
			stats.Empty++
		} else {
			stats.Processed++
			stats.Items += uint32(len(ext.Items))
		}
	}
	return results, failures, stats
}
