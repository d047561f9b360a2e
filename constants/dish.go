package constants

// DishMapping ties a menu item to the purchased ingredient it consumes.
// UsagePerServing is in grams.
type DishMapping struct {
	Dish            string
	Ingredient      string
	Vendor          string
	UsagePerServing float64
	SalesPatterns   []string
}

// Targets are acceptance thresholds for the usage analysis, in percent.
type Targets struct {
	WasteRatio float64
	CostRatio  float64
}

var DishIngredientMap = []DishMapping{
	{
		Dish:            "Beef Tenderloin",
		Ingredient:      "和牛ヒレ",
		Vendor:          HirayamaVendorName,
		UsagePerServing: 180,
		SalesPatterns:   []string{"beef tenderloin", "ビーフ", "テンダーロイン"},
	},
	{
		Dish:            "Egg Toast Caviar",
		Ingredient:      "キャビア",
		Vendor:          FrenchFnBVendorName,
		UsagePerServing: 15,
		SalesPatterns:   []string{"egg toast caviar", "キャビア", "エッグトースト"},
	},
}

var DefaultTargets = map[string]Targets{
	"Beef Tenderloin":  {WasteRatio: 15, CostRatio: 35},
	"Egg Toast Caviar": {WasteRatio: 10, CostRatio: 25},
}
