package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	// A form-feed \f is pdftotext's page separator; pages are joined with a
	// plain line break downstream.
	pages = 1 + strings.Count(text, "\f")
	text = strings.ReplaceAll(text, "\f", "\n")
	return text, pages, nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "pt-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func(dir string) {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("failed to remove raster dir", "path", dir, "error", err)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		if e.cfg.Preprocess {
			if err := enhanceForOCR(img); err != nil {
				warns = append(warns, fmt.Sprintf("preprocess %s: %v", filepath.Base(img), err))
			}
		}
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	pages = len(matches)
	return b.String(), pages, warns, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	// tesseract <file> stdout -l jpn+eng
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.Lang)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}
