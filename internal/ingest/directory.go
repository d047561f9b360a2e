// Package ingest collects uploadable documents from the filesystem.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

type FileResult struct {
	Path         string
	Format       string
	Deduplicated bool
	HashHex      string
	Err          string
}

type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

type Ingestor struct {
	logger *slog.Logger
}

func NewIngestor(logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{logger: logger}
}

// CollectDirectory walks root, keeps pdf/csv files (skipping hidden entries),
// deduplicates by content hash, and loads each survivor into a RawDocument.
// Per-file failures are recorded, never fatal to the walk.
func (u *Ingestor) CollectDirectory(root string) ([]entity.RawDocument, []FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, nil, DirStats{}, errors.New("root path is required")
	}

	var (
		docs    []entity.RawDocument
		results []FileResult
		stats   DirStats
		seen    = map[string]struct{}{}
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		format := constants.FormatForPath(path)
		if format == "" {
			return nil
		}
		stats.Matched++

		content, err := os.ReadFile(path)
		if err != nil {
			results = append(results, FileResult{Path: path, Format: format, Err: err.Error()})
			stats.Failed++
			return nil
		}

		sum := sha256.Sum256(content)
		hashHex := hex.EncodeToString(sum[:])
		if _, dup := seen[hashHex]; dup {
			results = append(results, FileResult{Path: path, Format: format, Deduplicated: true, HashHex: hashHex})
			stats.Succeeded++
			stats.Deduplicated++
			return nil
		}
		seen[hashHex] = struct{}{}

		docs = append(docs, entity.RawDocument{Filename: filepath.Base(path), Content: content})
		results = append(results, FileResult{Path: path, Format: format, HashHex: hashHex})
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return docs, results, stats, err
	}

	u.logger.Info("ingest.directory.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return docs, results, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
