package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/analysis"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

func sampleItems() []entity.LineItem {
	return []entity.LineItem{
		{
			Vendor:    constants.HirayamaVendorName,
			Date:      "2025-10-09",
			ItemName:  constants.WagyuItemName,
			Quantity:  6.30,
			Unit:      "kg",
			UnitPrice: 12000,
			Amount:    75600,
		},
		{
			Vendor:       constants.FrenchFnBVendorName,
			Date:         "2025-10-01",
			DateInferred: true,
			ItemName:     constants.CaviarItemName,
			Quantity:     1,
			Unit:         "pc",
			UnitPrice:    117000,
			Amount:       117000,
		},
	}
}

func TestLineItemsXLSX(t *testing.T) {
	s := NewService("Purchases", nil)

	b, err := s.LineItemsXLSX(sampleItems(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	date, err := f.GetCellValue("Purchases", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-09", date)

	item, err := f.GetCellValue("Purchases", "C3")
	require.NoError(t, err)
	assert.Contains(t, item, "KAVIARI")
}

func TestLineItemsXLSX_WithAnalysisSheet(t *testing.T) {
	s := NewService("", nil)

	evals := []analysis.Evaluation{{Dish: "Beef Tenderloin", Ingredient: "和牛ヒレ"}}
	b, err := s.LineItemsXLSX(sampleItems(), evals)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dish, err := f.GetCellValue("Analysis", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Beef Tenderloin", dish)
}

func TestLineItemsCSV(t *testing.T) {
	s := NewService("", nil)

	b, err := s.LineItemsCSV(sampleItems())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "vendor,date,item_name,quantity,unit,unit_price,amount,date_inferred", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "6.3")
	assert.Contains(t, lines[2], "117000")
}

func TestSalesCSV(t *testing.T) {
	s := NewService("", nil)

	records := []entity.SalesRecord{
		{Code: "101", Name: "Beef Tenderloin", Category: "Main", Qty: 15, Price: 12000,
			GrossTotal: 180000, NetTotal: 180000, Month: "2025-10"},
	}
	b, err := s.SalesCSV(records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "code,name,category,qty,price,gross_total,discount,net_total,month", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Beef Tenderloin")
}

func TestLineItemsJSON_ValidatesAgainstSchema(t *testing.T) {
	s := NewService("", nil)

	b, err := s.LineItemsJSON(sampleItems())
	require.NoError(t, err)
	assert.Contains(t, string(b), "KAVIARI")
	assert.Contains(t, string(b), "\"date_inferred\": true")
}

func TestLineItemsJSON_EmptyListIsValid(t *testing.T) {
	s := NewService("", nil)

	b, err := s.LineItemsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestLineItemsJSON_RejectsMalformedItem(t *testing.T) {
	s := NewService("", nil)

	bad := []entity.LineItem{{Vendor: "", Date: "2025-10-01", ItemName: "x", Quantity: 1, Unit: "pc"}}
	_, err := s.LineItemsJSON(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}
