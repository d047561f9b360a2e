package entity

// SalesRecord is one item row from a POS item-sales report.
type SalesRecord struct {
	Code       string  `json:"code" csv:"code"`
	Name       string  `json:"name" csv:"name"`
	Category   string  `json:"category" csv:"category"`
	Qty        float64 `json:"qty" csv:"qty"`
	Price      float64 `json:"price" csv:"price"`
	GrossTotal float64 `json:"gross_total" csv:"gross_total"`
	Discount   float64 `json:"discount" csv:"discount"`
	NetTotal   float64 `json:"net_total" csv:"net_total"`
	Month      string  `json:"month" csv:"month"` // YYYY-MM from the report header
}
