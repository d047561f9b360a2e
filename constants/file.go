package constants

import (
	"path/filepath"
	"strings"
)

// Formats for uploaded documents.
const (
	PDF = "PDF"
	CSV = "CSV"
)

// AllowedExtensions holds the default allowed file extensions for ingestion.
// Invoices arrive as PDFs; POS sales reports arrive as CSVs.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"csv": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a document format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "csv":
		return CSV
	default:
		return ""
	}
}

// FormatForPath is a convenience wrapper over MapExtToFormat.
func FormatForPath(path string) string {
	return MapExtToFormat(filepath.Ext(path))
}
