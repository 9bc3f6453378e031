package refdata

// JerseyPricing is the per-piece price table for sublimation jerseys, in pesos.
// Upper prices apply to shirt-only orders.
type JerseyPricing struct {
	Kids       int64
	Adult      int64
	UpperKids  int64
	UpperAdult int64
}

// SublimationPricing is keyed by lowercase sport.
var SublimationPricing = map[string]JerseyPricing{
	"basketball": {Kids: 850, Adult: 1050, UpperKids: 450, UpperAdult: 650},
	"volleyball": {Kids: 850, Adult: 1050, UpperKids: 450, UpperAdult: 650},
}

// Shorts-only pieces are priced as a fraction of the full set with a floor.
const (
	ShortsOnlyKidsFactor  = 0.45
	ShortsOnlyKidsFloor   = 400
	ShortsOnlyAdultFactor = 0.5
	ShortsOnlyAdultFloor  = 520
)

// HoodiePricing is used by the static price path.
var HoodiePricing = struct{ Kids, Adult int64 }{Kids: 700, Adult: 900}

var BallPricing = map[string]int64{"basketball": 450, "volleyball": 380, "football": 420}

var MedalPricing = map[string]int64{"gold": 150, "silver": 120, "bronze": 100}

var TrophyPricing = map[string]int64{"small": 800, "medium": 1200, "large": 1800}

var (
	KidsSizes  = []string{"S6", "S8", "S10", "S12", "S14"}
	AdultSizes = []string{"S", "M", "L", "XL", "XXL"}
)

var (
	CutTypes = []string{"Normal Cut", "NBA Cut"}
	Fabrics  = []string{"Polyester", "Dri-Fit", "Mesh", "Sublimation"}
)

var (
	BallSports    = []string{"basketball", "volleyball", "football"}
	BallBrands    = []string{"Molten", "Spalding", "Wilson", "Yohann's", "Mikasa", "Meteor"}
	BallMaterials = []string{"Composite Leather", "Synthetic Leather", "Rubber", "Microfiber", "PU Leather"}
	BallSizes     = []string{"4", "5", "6", "7"}
)

var (
	TrophyTypes     = []string{"Championship", "MVP", "Best Setter", "Best Spiker", "Champion", "Runner-Up", "Top Scorer"}
	TrophySizes     = []string{"Small", "Medium", "Large"}
	TrophyMaterials = []string{"Acrylic", "Wood", "Metal", "Crystal"}
	TrophyOccasions = []string{"Intramurals", "Regional Cup", "Corporate League", "Friendly Match", "All-Star Tournament"}
)

var MedalTypes = []string{"gold", "silver", "bronze"}

// Spending bands that drive quantities, in pesos per order.
const (
	ApparelSpendMin    = 7000
	ApparelSpendMax    = 15000
	NonApparelSpendMin = 1000
	NonApparelSpendMax = 5000
)

// CategoryAliases maps a lowercased catalog category label to its catalog key.
var CategoryAliases = map[string]string{
	"jerseys":      "jerseys",
	"hoodies":      "hoodies",
	"uniforms":     "uniforms",
	"t-shirts":     "tshirts",
	"tshirts":      "tshirts",
	"long sleeves": "longsleeves",
	"long sleeve":  "longsleeves",
	"balls":        "balls",
	"trophies":     "trophies",
	"medals":       "medals",
}
