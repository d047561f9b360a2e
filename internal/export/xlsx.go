package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shinmonzen/purchasing-tracker/internal/analysis"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// Service renders extracted line items and analysis results for the people
// who review purchasing, as XLSX/CSV/JSON bytes. It has no storage of its
// own; callers pass in whatever window of data they loaded.
type Service struct {
	sheetName string
	logger    *slog.Logger
}

func NewService(sheetName string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheetName == "" {
		sheetName = "Purchases"
	}
	return &Service{sheetName: sheetName, logger: logger}
}

// LineItemsXLSX returns a workbook with one sheet of line items and, when
// evaluations are present, one sheet of purchasing-efficiency metrics.
func (s *Service) LineItemsXLSX(items []entity.LineItem, evals []analysis.Evaluation) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	sheet := s.sheetName
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Date", "Vendor", "Item", "Quantity", "Unit", "Unit Price", "Amount", "Date Inferred"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, it.Date)
		write(2, it.Vendor)
		write(3, it.ItemName)
		write(4, it.Quantity)
		write(5, it.Unit)
		write(6, it.UnitPrice)
		write(7, it.Amount)
		write(8, it.DateInferred)
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 38)
	_ = f.SetColWidth(sheet, "C", "C", 34)
	_ = f.SetColWidth(sheet, "D", "G", 12)

	if len(evals) > 0 {
		if err := writeAnalysisSheet(f, evals); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"evaluations", len(evals),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeAnalysisSheet(f *excelize.File, evals []analysis.Evaluation) error {
	const sheet = "Analysis"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Dish", "Ingredient", "Vendor", "Dishes Sold", "Revenue",
		"Purchased Qty", "Cost", "Waste Ratio %", "Cost Ratio %", "Over Waste Target", "Over Cost Target"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, ev := range evals {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, ev.Dish)
		write(2, ev.Ingredient)
		write(3, ev.Vendor)
		write(4, ev.DishesSold.InexactFloat64())
		write(5, ev.Revenue.InexactFloat64())
		write(6, ev.PurchasedQty.InexactFloat64())
		write(7, ev.Cost.InexactFloat64())
		write(8, ev.WasteRatio.StringFixed(1))
		write(9, ev.CostRatio.StringFixed(1))
		write(10, ev.OverWasteTarget)
		write(11, ev.OverCostTarget)
	}

	_ = f.SetColWidth(sheet, "A", "C", 28)
	_ = f.SetColWidth(sheet, "D", "I", 14)
	return nil
}
