// Package sales parses item-sales CSV reports exported by the POS system.
// The export is a ragged multi-section report, not a uniform table: a
// preamble with the date range, repeated section headers, per-outlet
// subtotal rows and an end-of-report marker all share the file with the
// actual item rows.
package sales

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

var reHeaderDate = regexp.MustCompile(`(\d{4})-(\d{2})-\d{2}`)

// Rows whose joined text contains any of these are structure, not data.
var skipMarkers = []string{
	"Total:", "Sub Total:", "Outlet Total:", "Shop Total:",
	"Grand Total", "END OF REPORT", "Department:", "Outlet:", "Check Type:",
}

type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse reads one report. The report month is taken from the first
// YYYY-MM-DD date in the preamble; item rows begin after the Code/Name
// column-header row. Unparseable rows are skipped, not fatal.
func (p *Parser) Parse(r io.Reader) ([]entity.SalesRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		records       []entity.SalesRecord
		month         string
		inDataSection bool
		rowNum        int
	)

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNum+1, err)
		}
		rowNum++

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		joined := strings.Join(fields, " ")

		// Report month lives in the preamble date range.
		if month == "" && rowNum <= 10 {
			if m := reHeaderDate.FindStringSubmatch(joined); m != nil {
				month = m[1] + "-" + m[2]
			}
		}

		if len(fields) >= 8 && strings.Contains(fields[0], "Code") && strings.Contains(fields[1], "Name") {
			inDataSection = true
			continue
		}
		if !inDataSection {
			continue
		}
		if containsAnyMarker(joined) {
			continue
		}
		if len(fields) < 11 {
			continue
		}

		code, name := fields[0], fields[1]
		if code == "" || name == "" || code == "Code" {
			continue
		}

		rec := entity.SalesRecord{
			Code:       code,
			Name:       name,
			Category:   fields[3],
			Qty:        parseNumber(fields[6]),
			Price:      parseNumber(fields[5]),
			GrossTotal: parseNumber(fields[7]),
			Discount:   parseNumber(fields[8]),
			NetTotal:   parseNumber(fields[10]),
			Month:      month,
		}
		records = append(records, rec)
	}

	p.logger.Debug("sales.parse.ok", "rows", rowNum, "records", len(records), "month", month)
	return records, nil
}

func containsAnyMarker(row string) bool {
	for _, m := range skipMarkers {
		if strings.Contains(row, m) {
			return true
		}
	}
	return false
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
