package sales

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `Item Sales Report,,,,,,,,,,
The Shinmonzen,,,,,,,,,,
2025-10-01 - 2025-10-31,,,,,,,,,,
,,,,,,,,,,
Outlet: Main Dining,,,,,,,,,,
Code,Name,Group,Category,Tax,Price,Qty,Gross,Discount,Svc,Net
101,Beef Tenderloin,Food,Main,8%,"12,000",15,"180,000",0,,"180,000"
102,Egg Toast Caviar,Food,Appetizer,8%,"4,500",22,"99,000","1,000",,"98,000"
103,"Pasta, Truffle",Food,Main,8%,"3,800",8,"30,400",0,,"30,400"
Sub Total:,,,,,,45,"309,400","1,000",,"308,400"
Outlet Total:,,,,,,45,"309,400","1,000",,"308,400"
END OF REPORT,,,,,,,,,,
`

func TestParse_SampleReport(t *testing.T) {
	p := NewParser(nil)

	records, err := p.Parse(strings.NewReader(sampleReport))
	require.NoError(t, err)
	require.Len(t, records, 3)

	beef := records[0]
	assert.Equal(t, "101", beef.Code)
	assert.Equal(t, "Beef Tenderloin", beef.Name)
	assert.Equal(t, "Main", beef.Category)
	assert.Equal(t, 15.0, beef.Qty)
	assert.Equal(t, 12000.0, beef.Price)
	assert.Equal(t, 180000.0, beef.GrossTotal)
	assert.Equal(t, 0.0, beef.Discount)
	assert.Equal(t, 180000.0, beef.NetTotal)
	assert.Equal(t, "2025-10", beef.Month)

	caviar := records[1]
	assert.Equal(t, "Egg Toast Caviar", caviar.Name)
	assert.Equal(t, 1000.0, caviar.Discount)
	assert.Equal(t, 98000.0, caviar.NetTotal)

	// Quoted comma inside the name survives.
	assert.Equal(t, "Pasta, Truffle", records[2].Name)
}

func TestParse_SkipsRowsBeforeHeader(t *testing.T) {
	p := NewParser(nil)

	// A row that looks like data but appears before the Code/Name header
	// row is preamble, not data.
	report := "999,Phantom Row,x,Main,x,100,1,100,0,x,100\n" +
		"Code,Name,Group,Category,Tax,Price,Qty,Gross,Discount,Svc,Net\n" +
		"101,Beef Tenderloin,Food,Main,8%,100,1,100,0,,100\n"
	records, err := p.Parse(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "101", records[0].Code)
}

func TestParse_SkipsShortAndEmptyRows(t *testing.T) {
	p := NewParser(nil)

	report := "Code,Name,Group,Category,Tax,Price,Qty,Gross,Discount,Svc,Net\n" +
		"short,row,only\n" +
		",,,,,,,,,,\n" +
		"101,Beef Tenderloin,Food,Main,8%,100,1,100,0,,100\n"
	records, err := p.Parse(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParse_EmptyInput(t *testing.T) {
	p := NewParser(nil)

	records, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}
