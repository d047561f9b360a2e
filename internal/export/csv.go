package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// LineItemsCSV renders the normalized line items as CSV, one row per item,
// using the csv tags on entity.LineItem for the header.
func (s *Service) LineItemsCSV(items []entity.LineItem) ([]byte, error) {
	out, err := gocsv.MarshalString(&items)
	if err != nil {
		return nil, fmt.Errorf("csv marshal: %w", err)
	}
	s.logger.Info("export.csv.ok", "rows", len(items))
	return []byte(out), nil
}

// SalesCSV renders parsed sales records back out as a normalized flat CSV
// (the POS report format is not round-trippable, nor meant to be).
func (s *Service) SalesCSV(records []entity.SalesRecord) ([]byte, error) {
	out, err := gocsv.MarshalString(&records)
	if err != nil {
		return nil, fmt.Errorf("csv marshal: %w", err)
	}
	s.logger.Info("export.sales_csv.ok", "rows", len(records))
	return []byte(out), nil
}
