package invoice

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// FrenchFnBGrammar recovers discrete unit-priced rows from French F&B Japan
// invoices. When the text layer survives, rows keep a fairly regular column
// layout anchored on the 請求一括 billing marker; when OCR destroys it, a
// keyword scan per tracked product line is the fallback.
type FrenchFnBGrammar struct {
	logger *slog.Logger
}

func NewFrenchFnBGrammar(logger *slog.Logger) *FrenchFnBGrammar {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrenchFnBGrammar{logger: logger}
}

const (
	frenchFnBDefaultYear  = "2025"
	frenchFnBDefaultMonth = "01"
)

// Row layouts, fuller first:
//
//	row# orderDate slip# itemName deliveryDate 請求一括 \amount
//	orderDate slip# itemName deliveryDate 請求一括 \amount
//
// The stray backslash before the amount is an encoding artifact for the yen
// sign and is tolerated, as are thousands separators and negative amounts
// (invoice adjustments/credits).
var frenchFnBRowPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(\d{4}/\d{2}/\d{2})\s*(\d+)\s+(.+?)\s+(\d{4}/\d{2}/\d{2})\s+請求一括\s*\\?([-\d,]+)`),
	regexp.MustCompile(`(\d{4}/\d{2}/\d{2})\s+\d+\s+(.+?)\s+\d{4}/\d{2}/\d{2}\s+請求一括\s*\\?([-\d,]+)`),
}

var (
	reCaviarMention = keywordAmountPattern(constants.CaviarKeywords)
	reButterMention = keywordAmountPattern(constants.ButterKeywords)
)

func keywordAmountPattern(keywords []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(` + strings.Join(keywords, "|") + `).*?\\?([\d,]+)`)
}

func (g *FrenchFnBGrammar) Parse(text string) ([]entity.LineItem, Report) {
	month := headerMonth(text, frenchFnBDefaultYear, frenchFnBDefaultMonth)

	items := g.matchStructuredRows(text)

	rep := Report{HeaderMonthFound: !month.Inferred}
	if len(items) == 0 {
		items = g.scanProductMentions(text, month)
		rep.FallbackUsed = len(items) > 0
		if rep.FallbackUsed {
			g.logger.Info("frenchfnb.fallback",
				"items", len(items), "month", month.Year+"-"+month.Month)
		}
	}

	rep.ItemCount = len(items)
	rep.Total = sumAmounts(items)
	return items, rep
}

// matchStructuredRows is the primary strategy: per line, first matching row
// pattern wins. The order date is kept verbatim; the amount keeps its sign.
func (g *FrenchFnBGrammar) matchStructuredRows(text string) []entity.LineItem {
	var items []entity.LineItem
	for _, line := range strings.Split(text, "\n") {
		for _, pat := range frenchFnBRowPatterns {
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			var dateStr, itemName, amountStr string
			if len(m) == 7 {
				dateStr, itemName, amountStr = m[2], m[4], m[6]
			} else {
				dateStr, itemName, amountStr = m[1], m[2], m[3]
			}

			amount, err := parseYenAmount(amountStr)
			if err != nil {
				continue
			}
			items = append(items, entity.LineItem{
				Vendor:    constants.FrenchFnBVendorName,
				Date:      dateStr,
				ItemName:  strings.TrimSpace(itemName),
				Quantity:  1,
				Unit:      constants.FrenchFnBUnit,
				UnitPrice: float64(amount),
				Amount:    float64(amount),
			})
			break
		}
	}
	return items
}

// scanProductMentions is the fallback when no structured row matched: each
// tracked product family is scanned independently for name-then-amount
// occurrences. Row context is gone, so dates are synthesized from the
// invoice month plus a per-family day counter, and negative amounts are
// dropped rather than risk misattributing a credit.
func (g *FrenchFnBGrammar) scanProductMentions(text string, month invoiceMonth) []entity.LineItem {
	var items []entity.LineItem
	items = append(items, scanFamily(text, reCaviarMention, constants.CaviarItemName, month)...)
	items = append(items, scanFamily(text, reButterMention, constants.ButterItemName, month)...)
	return items
}

func scanFamily(text string, pat *regexp.Regexp, itemName string, month invoiceMonth) []entity.LineItem {
	var items []entity.LineItem
	day := 0
	for _, m := range pat.FindAllStringSubmatch(text, -1) {
		amount, err := parseYenAmount(m[2])
		if err != nil || amount <= 0 {
			continue
		}
		day++
		items = append(items, entity.LineItem{
			Vendor:       constants.FrenchFnBVendorName,
			Date:         month.dayOfMonth(day),
			DateInferred: true,
			ItemName:     itemName,
			Quantity:     1,
			Unit:         constants.FrenchFnBUnit,
			UnitPrice:    float64(amount),
			Amount:       float64(amount),
		})
	}
	return items
}

var yenAmountCleaner = strings.NewReplacer(",", "", `\`, "")

// parseYenAmount strips thousands separators and the stray currency glyph,
// keeping the sign.
func parseYenAmount(s string) (int, error) {
	return strconv.Atoi(yenAmountCleaner.Replace(s))
}
