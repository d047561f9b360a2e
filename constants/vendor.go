package constants

// Display names for the two supported vendors. These are the strings written
// into every LineItem; downstream filtering matches on them verbatim.
const (
	HirayamaVendorName  = "ミートショップひら山 (Meat Shop Hirayama)"
	FrenchFnBVendorName = "フレンチ・エフ・アンド・ビー (French F&B Japan)"
)

// Hirayama sells a single tracked commodity by weight.
const (
	WagyuItemName = "和牛ヒレ (Wagyu Tenderloin)"
	WagyuUnit     = "kg"

	// Standard per-kg rate. The per-unit price printed on the invoice is
	// unreliable after OCR, so amounts are always computed from this rate.
	WagyuUnitPrice = 12000

	// Plausible per-delivery weight range, inclusive. Values outside this
	// window are prices, slip numbers or percentages, not weights.
	WagyuMinKg = 4.0
	WagyuMaxKg = 10.0

	// Known pre-tax total for a full Hirayama monthly invoice, used for
	// reconciliation reporting only.
	HirayamaExpectedTotal = 1074000
)

// French F&B tracked product lines and their fixed line-item fields.
const (
	CaviarItemName = "KAVIARI キャビア クリスタル 100g"
	ButterItemName = "パレット バター (Butter)"
	FrenchFnBUnit  = "pc"
)

// Filename keywords checked before any content sniffing (lowercased match).
var (
	HirayamaFilenameKeywords  = []string{"hirayama", "meat"}
	FrenchFnBFilenameKeywords = []string{"french", "fnb", "caviar"}
)

// Identifying substrings inside recovered text. Japanese script is matched
// case-sensitively; there is no case folding to apply.
var (
	HirayamaTextMarkers  = []string{"ひら山"}
	FrenchFnBTextMarkers = []string{"フレンチ"}
)

// Last-resort content sniffing: ingredient names characteristic of each
// vendor's tracked products.
var (
	HirayamaProductMarkers  = []string{"和牛", "ヒレ"}
	FrenchFnBProductMarkers = []string{"キャビア", "KAVIARI"}
)

// OCR-confusable spellings of product names, used by the French F&B fallback
// scan when the structured row layout is destroyed.
var (
	CaviarKeywords = []string{"KAVIARI", "キャビア", "キャヴィア"}
	ButterKeywords = []string{"パレット", "ﾊﾟﾚｯﾄ", "ブール", "バラット"}
)
