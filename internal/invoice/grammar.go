package invoice

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// Grammar is one vendor's set of heuristics for recovering line items from
// recovered invoice text. Implementations are pure: same text in, same items
// out, no state carried between documents.
type Grammar interface {
	Parse(text string) ([]entity.LineItem, Report)
}

// Report is the structured outcome of one parse, replacing log-only
// diagnostics so callers (and tests) can assert on extraction completeness.
type Report struct {
	ItemCount int
	Total     decimal.Decimal

	// ExpectedTotal and DiscrepancyRatio are set only for grammars that
	// carry a known reference total. Ratio is (total-expected)/expected.
	ExpectedTotal    decimal.Decimal
	DiscrepancyRatio decimal.Decimal

	// HeaderMonthFound is false when the invoice month fell back to the
	// grammar's hardcoded default.
	HeaderMonthFound bool

	// FallbackUsed reports that the grammar's low-precision fallback
	// strategy contributed items.
	FallbackUsed bool
}

// Registry maps each classifiable vendor to its grammar. Adding a vendor
// means implementing Grammar and registering it here.
func Registry(logger *slog.Logger) map[Vendor]Grammar {
	return map[Vendor]Grammar{
		VendorHirayama:  NewHirayamaGrammar(logger),
		VendorFrenchFnB: NewFrenchFnBGrammar(logger),
	}
}

func sumAmounts(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Amount))
	}
	return total
}
