package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinmonzen/purchasing-tracker/constants"
	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

func wagyuItem(qty float64) entity.LineItem {
	return entity.LineItem{
		Vendor:    constants.HirayamaVendorName,
		ItemName:  constants.WagyuItemName,
		Quantity:  qty,
		Unit:      constants.WagyuUnit,
		UnitPrice: constants.WagyuUnitPrice,
		Amount:    qty * constants.WagyuUnitPrice,
	}
}

func caviarItem(amount float64) entity.LineItem {
	return entity.LineItem{
		Vendor:    constants.FrenchFnBVendorName,
		ItemName:  constants.CaviarItemName,
		Quantity:  1,
		Unit:      constants.FrenchFnBUnit,
		UnitPrice: amount,
		Amount:    amount,
	}
}

func TestEvaluate_BeefWasteAndCostRatios(t *testing.T) {
	e := NewEvaluator(nil)

	// 10 kg purchased for 120,000; 50 servings ate 50*180g = 9 kg.
	items := []entity.LineItem{wagyuItem(6.0), wagyuItem(4.0)}
	sales := []entity.SalesRecord{
		{Name: "Beef Tenderloin", Qty: 50, NetTotal: 600000},
	}

	evals := e.Evaluate(items, sales)
	require.Len(t, evals, len(constants.DishIngredientMap))

	beef := findEval(t, evals, "Beef Tenderloin")
	assert.Equal(t, "10", beef.PurchasedQty.String())
	assert.Equal(t, "120000", beef.Cost.String())
	assert.Equal(t, "9", beef.ExpectedUsageKg.String())
	// Waste: (10-9)/10 = 10%; cost: 120000/600000 = 20%.
	assert.Equal(t, "10.0", beef.WasteRatio.StringFixed(1))
	assert.Equal(t, "20.0", beef.CostRatio.StringFixed(1))
	assert.False(t, beef.OverWasteTarget)
	assert.False(t, beef.OverCostTarget)
}

func TestEvaluate_OverTargetFlags(t *testing.T) {
	e := NewEvaluator(nil)

	// 10 kg purchased, only 20 servings sold -> 3.6 kg used, 64% waste.
	// Cost 120,000 against 240,000 revenue -> 50% cost ratio.
	items := []entity.LineItem{wagyuItem(10.0)}
	sales := []entity.SalesRecord{
		{Name: "Beef Tenderloin", Qty: 20, NetTotal: 240000},
	}

	beef := findEval(t, e.Evaluate(items, sales), "Beef Tenderloin")
	assert.True(t, beef.OverWasteTarget)
	assert.True(t, beef.OverCostTarget)
}

func TestEvaluate_CaviarPieceGoods(t *testing.T) {
	e := NewEvaluator(nil)

	// 3 tins of 100g = 0.3 kg purchased; 10 servings ate 150 g.
	items := []entity.LineItem{caviarItem(45000), caviarItem(45000), caviarItem(47000)}
	sales := []entity.SalesRecord{
		{Name: "Egg Toast Caviar", Qty: 10, NetTotal: 380000},
	}

	caviar := findEval(t, e.Evaluate(items, sales), "Egg Toast Caviar")
	assert.Equal(t, "3", caviar.PurchasedQty.String())
	assert.Equal(t, "137000", caviar.Cost.String())
	// Waste: (0.3-0.15)/0.3 = 50%.
	assert.Equal(t, "50.0", caviar.WasteRatio.StringFixed(1))
	assert.True(t, caviar.OverWasteTarget)
}

func TestEvaluate_NegativeWasteFloorsAtZero(t *testing.T) {
	e := NewEvaluator(nil)

	// More servings sold than purchases in the window.
	items := []entity.LineItem{wagyuItem(5.0)}
	sales := []entity.SalesRecord{
		{Name: "Beef Tenderloin", Qty: 100, NetTotal: 1200000},
	}

	beef := findEval(t, e.Evaluate(items, sales), "Beef Tenderloin")
	assert.True(t, beef.WasteRatio.IsZero())
}

func TestEvaluate_NoDataYieldsZeroRatios(t *testing.T) {
	e := NewEvaluator(nil)

	evals := e.Evaluate(nil, nil)
	for _, ev := range evals {
		assert.True(t, ev.WasteRatio.IsZero())
		assert.True(t, ev.CostRatio.IsZero())
		assert.False(t, ev.OverWasteTarget)
		assert.False(t, ev.OverCostTarget)
	}
}

func TestEvaluate_SalesPatternMatching(t *testing.T) {
	e := NewEvaluator(nil)

	sales := []entity.SalesRecord{
		{Name: "ビーフ テンダーロイン", Qty: 5, NetTotal: 60000},
		{Name: "BEEF TENDERLOIN SET", Qty: 2, NetTotal: 30000},
		{Name: "Chicken Curry", Qty: 9, NetTotal: 13500},
	}

	beef := findEval(t, e.Evaluate(nil, sales), "Beef Tenderloin")
	assert.Equal(t, "7", beef.DishesSold.String())
	assert.Equal(t, "90000", beef.Revenue.String())
}

func findEval(t *testing.T, evals []Evaluation, dish string) Evaluation {
	t.Helper()
	for _, ev := range evals {
		if ev.Dish == dish {
			return ev
		}
	}
	t.Fatalf("no evaluation for dish %q", dish)
	return Evaluation{}
}
