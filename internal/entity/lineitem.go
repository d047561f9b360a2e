package entity

// LineItem is one normalized invoice row recovered by a vendor grammar.
// Amount is the monetary total for the line and may legitimately diverge from
// Quantity*UnitPrice when a standard rate is substituted for an unreadable
// printed price.
type LineItem struct {
	Vendor    string  `json:"vendor" csv:"vendor"`
	Date      string  `json:"date" csv:"date"`
	ItemName  string  `json:"item_name" csv:"item_name"`
	Quantity  float64 `json:"quantity" csv:"quantity"`
	Unit      string  `json:"unit" csv:"unit"`
	UnitPrice float64 `json:"unit_price" csv:"unit_price"`
	Amount    float64 `json:"amount" csv:"amount"`

	// DateInferred marks dates synthesized from the invoice header month (or
	// its hardcoded default) rather than read off the row itself.
	DateInferred bool `json:"date_inferred" csv:"date_inferred"`
}
