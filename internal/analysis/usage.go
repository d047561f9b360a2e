// Package analysis reconciles purchased ingredient quantities against dish
// sales to evaluate waste and cost efficiency per tracked ingredient.
package analysis

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// Evaluation is the purchasing-efficiency result for one dish/ingredient
// pair. Ratios are percentages.
type Evaluation struct {
	Dish       string
	Ingredient string
	Vendor     string

	DishesSold   decimal.Decimal
	Revenue      decimal.Decimal
	PurchasedQty decimal.Decimal // grammar units: kg for weight goods, pieces otherwise
	Cost         decimal.Decimal

	ExpectedUsageKg decimal.Decimal
	WasteRatio      decimal.Decimal
	CostRatio       decimal.Decimal

	OverWasteTarget bool
	OverCostTarget  bool
}

type Evaluator struct {
	logger *slog.Logger
}

func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger}
}

// Evaluate produces one Evaluation per configured dish mapping. Line items
// are attributed by substring match on the item name, sales rows by the
// dish's sales patterns (case-insensitive).
func (e *Evaluator) Evaluate(items []entity.LineItem, sales []entity.SalesRecord) []Evaluation {
	evals := make([]Evaluation, 0, len(constants.DishIngredientMap))
	for _, mapping := range constants.DishIngredientMap {
		ev := e.evaluateDish(mapping, items, sales)
		evals = append(evals, ev)
	}
	return evals
}

func (e *Evaluator) evaluateDish(mapping constants.DishMapping, items []entity.LineItem, sales []entity.SalesRecord) Evaluation {
	ev := Evaluation{
		Dish:       mapping.Dish,
		Ingredient: mapping.Ingredient,
		Vendor:     mapping.Vendor,
	}

	for _, rec := range sales {
		if !matchesAnyPattern(rec.Name, mapping.SalesPatterns) {
			continue
		}
		ev.DishesSold = ev.DishesSold.Add(decimal.NewFromFloat(rec.Qty))
		ev.Revenue = ev.Revenue.Add(decimal.NewFromFloat(rec.NetTotal))
	}

	weightBased := false
	for _, it := range items {
		if !strings.Contains(it.ItemName, mapping.Ingredient) {
			continue
		}
		ev.PurchasedQty = ev.PurchasedQty.Add(decimal.NewFromFloat(it.Quantity))
		ev.Cost = ev.Cost.Add(decimal.NewFromFloat(it.Amount))
		if it.Unit == constants.WagyuUnit {
			weightBased = true
		}
	}

	perServingG := decimal.NewFromFloat(mapping.UsagePerServing)
	ev.ExpectedUsageKg = ev.DishesSold.Mul(perServingG).Div(decimal.NewFromInt(1000))

	// Waste only makes sense for weight-based goods; piece goods compare
	// counts elsewhere. Floor at zero: selling ahead of purchases within
	// the window is not negative waste.
	purchasedKg := ev.PurchasedQty
	if !weightBased {
		// Caviar tins are 100g each.
		purchasedKg = ev.PurchasedQty.Mul(decimal.NewFromFloat(0.1))
	}
	if purchasedKg.IsPositive() {
		hundred := decimal.NewFromInt(100)
		ev.WasteRatio = purchasedKg.Sub(ev.ExpectedUsageKg).Div(purchasedKg).Mul(hundred)
		if ev.WasteRatio.IsNegative() {
			ev.WasteRatio = decimal.Zero
		}
	}
	if ev.Revenue.IsPositive() {
		ev.CostRatio = ev.Cost.Div(ev.Revenue).Mul(decimal.NewFromInt(100))
	}

	if t, ok := constants.DefaultTargets[mapping.Dish]; ok {
		ev.OverWasteTarget = ev.WasteRatio.GreaterThan(decimal.NewFromFloat(t.WasteRatio))
		ev.OverCostTarget = ev.CostRatio.GreaterThan(decimal.NewFromFloat(t.CostRatio))
	}

	e.logger.Debug("analysis.dish",
		"dish", mapping.Dish,
		"sold", ev.DishesSold.String(),
		"purchased", ev.PurchasedQty.String(),
		"waste_ratio", ev.WasteRatio.StringFixed(1),
		"cost_ratio", ev.CostRatio.StringFixed(1),
	)
	return ev
}

func matchesAnyPattern(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
