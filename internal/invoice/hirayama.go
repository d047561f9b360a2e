package invoice

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// HirayamaGrammar recovers per-delivery wagyu weights from Meat Shop
// Hirayama invoices. Scans of these invoices come back badly scrambled, so
// three layered strategies each contribute quantities to one deduplicated
// set, and amounts are always computed from the standard per-kg rate rather
// than the unreadable printed price.
type HirayamaGrammar struct {
	logger *slog.Logger
}

func NewHirayamaGrammar(logger *slog.Logger) *HirayamaGrammar {
	if logger == nil {
		logger = slog.Default()
	}
	return &HirayamaGrammar{logger: logger}
}

const (
	hirayamaDefaultYear  = "2025"
	hirayamaDefaultMonth = "10"

	// Below this count, strategy 2 is assumed to have lost entries to scan
	// noise and the candidate pool is drained as backfill.
	hirayamaMinItems = 10
)

var (
	reDecimalToken = regexp.MustCompile(`\d+\.?\d*`)
	reSlashDate    = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{2})`)

	// "ke" and mixed-case spellings are common misreads of the kg token.
	reWeightToken = regexp.MustCompile(`(?i)(\d+\.\d+)\s*(?:kg|ke)`)
)

func (g *HirayamaGrammar) Parse(text string) ([]entity.LineItem, Report) {
	month := headerMonth(text, hirayamaDefaultYear, hirayamaDefaultMonth)

	pool := scanCandidateWeights(text)

	seen := make(map[int64]struct{})
	items := matchDatedWeightLines(text, month, seen)

	if len(items) < hirayamaMinItems {
		backfilled := backfillFromPool(pool, month, seen)
		if len(backfilled) > 0 {
			g.logger.Debug("hirayama.backfill",
				"line_matched", len(items), "backfilled", len(backfilled))
		}
		items = append(items, backfilled...)
	}

	// Deterministic output order. Quantity, not chronology: backfilled
	// entries have no trustworthy date to sort by.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity < items[j].Quantity
	})

	rep := g.reconcile(items, month)
	return items, rep
}

func (g *HirayamaGrammar) reconcile(items []entity.LineItem, month invoiceMonth) Report {
	rep := Report{
		ItemCount:        len(items),
		Total:            sumAmounts(items),
		ExpectedTotal:    decimal.NewFromInt(constants.HirayamaExpectedTotal),
		HeaderMonthFound: !month.Inferred,
	}
	rep.DiscrepancyRatio = rep.Total.Sub(rep.ExpectedTotal).Div(rep.ExpectedTotal)

	// Diagnostic only. A mismatch never blocks output.
	if !rep.Total.Equal(rep.ExpectedTotal) {
		g.logger.Info("hirayama.total_mismatch",
			"items", rep.ItemCount,
			"total", rep.Total.String(),
			"expected", rep.ExpectedTotal.String(),
			"discrepancy_ratio", rep.DiscrepancyRatio.StringFixed(4))
	}
	return rep
}

// scanCandidateWeights is strategy 1: a global scan for decimal tokens in
// the plausible per-delivery weight range. Integers are excluded so prices,
// slip numbers and percentages don't pollute the pool. Candidates are held
// back and only emitted as backfill.
func scanCandidateWeights(text string) []float64 {
	var pool []float64
	for _, tok := range reDecimalToken.FindAllString(text, -1) {
		if !strings.Contains(tok, ".") {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		if v >= constants.WagyuMinKg && v <= constants.WagyuMaxKg {
			pool = append(pool, v)
		}
	}
	return pool
}

// matchDatedWeightLines is strategy 2: a line-scoped scan that carries a
// running delivery date (two-digit slash dates, read as 20YY-MM-DD) and
// emits one item per weight token found in range. The dedup key is the
// quantity rounded to 2 decimals; a repeated weight is taken to be the same
// physical entry re-read.
func matchDatedWeightLines(text string, month invoiceMonth, seen map[int64]struct{}) []entity.LineItem {
	var items []entity.LineItem

	currentDate := month.firstOfMonth()
	dateInferred := true

	lines := strings.Split(strings.ReplaceAll(text, "|", " "), "\n")
	for _, line := range lines {
		if m := reSlashDate.FindStringSubmatch(line); m != nil {
			currentDate = "20" + m[1] + "-" + m[2] + "-" + m[3]
			dateInferred = false
		}

		for _, m := range reWeightToken.FindAllStringSubmatch(line, -1) {
			qty, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if qty < constants.WagyuMinKg || qty > constants.WagyuMaxKg {
				continue
			}
			key := dedupKey(qty)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, newWagyuItem(qty, currentDate, dateInferred))
		}
	}
	return items
}

// backfillFromPool is strategy 3: drain the candidate pool for quantities
// whose line context (date, unit token) was mangled beyond strategy 2's
// pattern. Dates fall back to the first of the invoice month.
func backfillFromPool(pool []float64, month invoiceMonth, seen map[int64]struct{}) []entity.LineItem {
	var items []entity.LineItem
	for _, qty := range pool {
		key := dedupKey(qty)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, newWagyuItem(qty, month.firstOfMonth(), true))
	}
	return items
}

func newWagyuItem(qty float64, date string, dateInferred bool) entity.LineItem {
	return entity.LineItem{
		Vendor:       constants.HirayamaVendorName,
		Date:         date,
		DateInferred: dateInferred,
		ItemName:     constants.WagyuItemName,
		Quantity:     qty,
		Unit:         constants.WagyuUnit,
		UnitPrice:    constants.WagyuUnitPrice,
		Amount:       math.Round(qty * constants.WagyuUnitPrice),
	}
}

func dedupKey(qty float64) int64 {
	return int64(math.Round(qty * 100))
}
