package sim

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"

	"github.com/shopspring/decimal"
)

// Category is what a single order is built around.
type Category string

const (
	CategoryJersey     Category = "jersey"
	CategoryTShirt     Category = "tshirt"
	CategoryHoodie     Category = "hoodie"
	CategoryLongSleeve Category = "longsleeve"
	CategoryUniform    Category = "uniform"
	CategoryTrophy     Category = "trophy"
	CategoryMedal      Category = "medal"
	CategoryBall       Category = "ball"
)

// apparelKeys maps non-jersey apparel categories onto their catalog key.
var apparelKeys = map[Category]string{
	CategoryTShirt:     core.KeyTShirts,
	CategoryHoodie:     core.KeyHoodies,
	CategoryLongSleeve: core.KeyLongSleeves,
	CategoryUniform:    core.KeyUniforms,
}

// CategoryPick is the outcome of a category roll. Sport is set for jerseys.
type CategoryPick struct {
	Category Category
	Sport    string
}

// The thresholds add up to 1.13; rolls are drawn from [0, categoryRollSpan).
const categoryRollSpan = 1.13

var categoryThresholds = []struct {
	limit float64
	pick  CategoryPick
}{
	{0.32, CategoryPick{CategoryJersey, "Basketball"}},
	{0.54, CategoryPick{CategoryJersey, "Volleyball"}},
	{0.67, CategoryPick{Category: CategoryTShirt}},
	{0.80, CategoryPick{Category: CategoryHoodie}},
	{0.90, CategoryPick{Category: CategoryLongSleeve}},
	{1.01, CategoryPick{Category: CategoryUniform}},
	{1.04, CategoryPick{Category: CategoryTrophy}},
	{1.10, CategoryPick{Category: CategoryMedal}},
}

// CategoryForRoll maps a roll in [0, 1.13) onto a category. Anything at or
// above 1.10 is a ball order.
func CategoryForRoll(roll float64) CategoryPick {
	for _, t := range categoryThresholds {
		if roll < t.limit {
			return t.pick
		}
	}
	return CategoryPick{Category: CategoryBall}
}

const (
	fulfilledShare   = 0.97
	jerseyTeamShare  = 0.85
	apparelTeamShare = 0.70
	minTeamSize      = 8
	maxTeamSize      = 15
	maxSingleEntries = 3

	// Day loop limits relative to the day's target.
	dayMaxAttempts   = 50
	dayHardCap       = 2.0
	dayOvershoot     = 1.3
	dayNearlyReached = 0.8
)

var errNoCatalog = errors.New("product catalog not loaded")

// composition is the item list of one order before it gets a branch,
// an address and a status.
type composition struct {
	items    []core.OrderItem
	isTeam   bool
	teamName string
}

// Composer builds orders. It shares the run's random source and is not safe
// for concurrent use.
type Composer struct {
	ctx       *SimulationContext
	src       *random.Source
	addresses *AddressSynthesizer
	synthetic *syntheticFactory
}

func NewComposer(ctx *SimulationContext, src *random.Source) *Composer {
	return &Composer{
		ctx:       ctx,
		src:       src,
		addresses: NewAddressSynthesizer(ctx.Geo, ctx.Branches, src),
		synthetic: &syntheticFactory{src: src},
	}
}

// Order builds one order placed on date. It uses the product catalog when
// one is loaded and the static price tables otherwise.
func (c *Composer) Order(date time.Time) core.Order {
	comp, err := c.fromCatalog()
	if err != nil || len(comp.items) == 0 {
		comp = c.legacy()
	}
	return c.finish(date, comp)
}

// OrdersForDay generates orders for date until their item count reaches the
// day's target. A candidate that would push the day past twice the target is
// dropped; when nothing fits the smallest candidate is kept so no day is
// empty.
func (c *Composer) OrdersForDay(date time.Time, growth float64) (int, []core.Order) {
	target := c.ctx.Demand.TargetVolume(c.src, date, growth)
	limit := float64(target)

	var (
		orders   []core.Order
		total    int
		smallest *core.Order
	)
	for attempt := 0; attempt < dayMaxAttempts && (total < target || len(orders) == 0); attempt++ {
		o := c.Order(date)
		n := o.TotalItems
		if smallest == nil || n < smallest.TotalItems {
			cp := o
			smallest = &cp
		}
		if float64(total+n) > limit*dayHardCap {
			continue
		}
		if float64(total+n) > limit*dayOvershoot && float64(total) >= limit*dayNearlyReached && len(orders) > 0 {
			break
		}
		orders = append(orders, o)
		total += n
	}
	if len(orders) == 0 && smallest != nil {
		orders = append(orders, *smallest)
	}
	return target, orders
}

func (c *Composer) fromCatalog() (composition, error) {
	if c.ctx.Products == nil {
		return composition{}, errNoCatalog
	}
	team := random.Pick(c.src, refdata.TeamNames)
	pick := CategoryForRoll(c.src.Float64() * categoryRollSpan)

	switch pick.Category {
	case CategoryJersey:
		return c.jerseyOrder(pick.Sport, team), nil
	case CategoryTShirt, CategoryHoodie, CategoryLongSleeve, CategoryUniform:
		return c.apparelOrder(pick.Category, team), nil
	case CategoryBall:
		return c.ballOrder(), nil
	case CategoryTrophy:
		return c.trophyOrder(team), nil
	case CategoryMedal:
		return c.medalOrder(), nil
	}
	return composition{}, fmt.Errorf("unknown category %q", pick.Category)
}

func (c *Composer) variant() string {
	roll := c.src.Float64()
	switch {
	case roll < 0.50:
		return core.VariantFullSet
	case roll < 0.80:
		return core.VariantShirtOnly
	default:
		return core.VariantShortsOnly
	}
}

func sizeType(kids bool) string {
	if kids {
		return "kids"
	}
	return "adult"
}

// sublimationPrice prices a jersey variant from the static sublimation table.
func sublimationPrice(p refdata.JerseyPricing, variant string, kids bool) decimal.Decimal {
	switch variant {
	case core.VariantShirtOnly:
		if kids {
			return decimal.NewFromInt(p.UpperKids)
		}
		return decimal.NewFromInt(p.UpperAdult)
	case core.VariantShortsOnly:
		if kids {
			return decimal.NewFromInt(max(refdata.ShortsOnlyKidsFloor, int64(math.Round(float64(p.Kids)*refdata.ShortsOnlyKidsFactor))))
		}
		return decimal.NewFromInt(max(refdata.ShortsOnlyAdultFloor, int64(math.Round(float64(p.Adult)*refdata.ShortsOnlyAdultFactor))))
	default:
		if kids {
			return decimal.NewFromInt(p.Kids)
		}
		return decimal.NewFromInt(p.Adult)
	}
}

// quantityForSpend sizes a line so it lands near a spend drawn from
// [spendMin, spendMax], clamped to [lo, hi].
func (c *Composer) quantityForSpend(unit decimal.Decimal, spendMin, spendMax, lo, hi int) int {
	spend := float64(c.src.IntBetween(spendMin, spendMax))
	price := unit.InexactFloat64()
	if price <= 0 {
		return lo
	}
	q := int(math.Round(spend / price))
	return min(hi, max(lo, q))
}

func (c *Composer) rosterSize(isTeam bool, unit decimal.Decimal) int {
	if isTeam {
		return c.quantityForSpend(unit, refdata.ApparelSpendMin, refdata.ApparelSpendMax, minTeamSize, maxTeamSize)
	}
	return c.src.IntBetween(1, maxSingleEntries)
}

func (c *Composer) jerseyOrder(sport, team string) composition {
	product, ok := c.ctx.Products.Pick(c.src, []string{core.KeyJerseys}, core.ApparelKeys)
	isTeam := c.src.Chance(jerseyTeamShare)
	variant := c.variant()
	if !ok {
		product = c.synthetic.jersey(sport, team)
	}

	unit := product.VariantPrice(variant)
	if !unit.IsPositive() {
		unit = pesos(1000)
	}
	kidsShare := 0.6
	if isTeam {
		kidsShare = 0.7
	}
	kids := c.src.Chance(kidsShare)
	if pricing, ok := refdata.SublimationPricing[strings.ToLower(sport)]; ok {
		unit = sublimationPrice(pricing, variant, kids)
	}

	cut := random.Pick(c.src, refdata.CutTypes)
	unit = unit.Add(product.CutTypeSurcharges[cut])
	members := c.roster(c.rosterSize(isTeam, unit), kids, variant, unit, product.FabricSurcharges)

	item := apparelItem(product, "jersey", unit, members)
	item.Sport = sport
	item.Variant = variant
	item.CutType = cut
	item.SizeType = sizeType(kids)
	item.IsTeamOrder = isTeam
	item.TeamName = team
	return composition{items: []core.OrderItem{item}, isTeam: isTeam, teamName: team}
}

func (c *Composer) apparelOrder(category Category, team string) composition {
	product, ok := c.ctx.Products.Pick(c.src, []string{apparelKeys[category]}, core.ApparelKeys)
	if !ok {
		product = c.synthetic.apparel(category, team)
	}
	isTeam := c.src.Chance(apparelTeamShare)
	kidsShare := 0.55
	if isTeam {
		kidsShare = 0.65
	}
	kids := c.src.Chance(kidsShare)

	unit := product.Price
	if !unit.IsPositive() {
		unit = pesos(900)
		if kids {
			unit = pesos(700)
		}
	}
	switch {
	case kids && category == CategoryUniform:
		unit = decimal.Min(unit, pesos(780))
	case kids:
		unit = decimal.Min(unit, pesos(640))
	case category == CategoryUniform:
		unit = decimal.Max(unit, pesos(920))
	}

	members := c.roster(c.rosterSize(isTeam, unit), kids, "", unit, product.FabricSurcharges)
	item := apparelItem(product, string(category), unit, members)
	item.SizeType = sizeType(kids)
	item.IsTeamOrder = isTeam
	item.TeamName = team
	return composition{items: []core.OrderItem{item}, isTeam: isTeam, teamName: team}
}

// roster builds one entry per piece. Each member picks a fabric; its
// surcharge, when the product lists one, is added to that member's price.
// An empty variant means a single top piece.
func (c *Composer) roster(count int, kids bool, variant string, unit decimal.Decimal, fabrics map[string]decimal.Decimal) []core.TeamMember {
	sizes := refdata.AdultSizes
	if kids {
		sizes = refdata.KidsSizes
	}
	members := make([]core.TeamMember, count)
	for i := range members {
		m := core.TeamMember{
			FirstName:  random.Pick(c.src, refdata.FirstNames),
			Surname:    random.Pick(c.src, refdata.LastNames),
			Number:     c.src.IntBetween(1, 99),
			SizingType: sizeType(kids),
			Fabric:     random.Pick(c.src, refdata.Fabrics),
		}
		switch variant {
		case core.VariantFullSet:
			size := random.Pick(c.src, sizes)
			m.JerseySize, m.ShortsSize = &size, &size
		case core.VariantShortsOnly:
			size := random.Pick(c.src, sizes)
			m.ShortsSize = &size
		default:
			size := random.Pick(c.src, sizes)
			m.JerseySize = &size
		}
		m.UnitPrice = unit.Add(fabrics[m.Fabric])
		m.TotalPrice = m.UnitPrice
		members[i] = m
	}
	return members
}

func apparelItem(product core.Product, productType string, unit decimal.Decimal, members []core.TeamMember) core.OrderItem {
	total := decimal.Zero
	for _, m := range members {
		total = total.Add(m.TotalPrice)
	}
	return core.OrderItem{
		ProductID:    product.ID,
		Name:         product.Name,
		Category:     product.Category,
		ProductType:  productType,
		PricePerUnit: unit,
		Quantity:     len(members),
		TotalPrice:   total,
		Synthetic:    product.Synthetic,
		Members:      members,
	}
}

func lineItem(product core.Product, productType string, unit decimal.Decimal, qty int) core.OrderItem {
	return core.OrderItem{
		ProductID:    product.ID,
		Name:         product.Name,
		Category:     product.Category,
		ProductType:  productType,
		PricePerUnit: unit,
		Quantity:     qty,
		TotalPrice:   unit.Mul(decimal.NewFromInt(int64(qty))),
		Synthetic:    product.Synthetic,
	}
}

func (c *Composer) ballOrder() composition {
	product, ok := c.ctx.Products.Pick(c.src, []string{core.KeyBalls}, []string{core.KeyOthers})
	if !ok {
		product = c.synthetic.ball()
	}
	unit := product.Price
	if !unit.IsPositive() {
		unit = pesos(1800)
	}
	qty := c.quantityForSpend(unit, refdata.NonApparelSpendMin, refdata.NonApparelSpendMax, 1, 15)
	item := lineItem(product, "ball", unit, qty)
	if item.Category == "" {
		item.Category = "Balls"
	}
	item.Ball = c.ballDetails(product.Name)
	return composition{items: []core.OrderItem{item}}
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

func (c *Composer) ballDetails(name string) *core.BallDetails {
	lower := strings.ToLower(name)
	sport := "Basketball"
	switch {
	case strings.Contains(lower, "volley"):
		sport = "Volleyball"
	case strings.Contains(lower, "foot"):
		sport = "Football"
	}
	brand := ""
	if fields := strings.Fields(name); len(fields) > 0 {
		brand = nonAlnum.ReplaceAllString(fields[0], "")
	}
	if brand == "" {
		brand = random.Pick(c.src, refdata.BallBrands)
	}
	return &core.BallDetails{
		SportType: sport,
		Brand:     brand,
		BallSize:  random.Pick(c.src, refdata.BallSizes),
		Material:  random.Pick(c.src, refdata.BallMaterials),
	}
}

func (c *Composer) trophyOrder(team string) composition {
	product, ok := c.ctx.Products.Pick(c.src, []string{core.KeyTrophies}, []string{core.KeyOthers})
	if !ok {
		product = c.synthetic.trophy()
	}
	unit := product.Price
	if !unit.IsPositive() {
		unit = pesos(900)
	}
	qty := c.quantityForSpend(unit, refdata.NonApparelSpendMin, refdata.NonApparelSpendMax, 1, 8)
	item := lineItem(product, "trophy", unit, qty)
	if item.Category == "" {
		item.Category = "Trophies"
	}

	trophyType := ""
	lower := strings.ToLower(product.Name)
	for _, t := range refdata.TrophyTypes {
		if strings.Contains(lower, strings.ToLower(t)) {
			trophyType = t
			break
		}
	}
	if trophyType == "" {
		trophyType = random.Pick(c.src, refdata.TrophyTypes)
	}
	item.Trophy = &core.TrophyDetails{
		TrophyType:    trophyType,
		Size:          random.Pick(c.src, refdata.TrophySizes),
		Material:      random.Pick(c.src, refdata.TrophyMaterials),
		EngravingText: fmt.Sprintf("Congratulations %s!", team),
		Occasion:      random.Pick(c.src, refdata.TrophyOccasions),
	}
	return composition{items: []core.OrderItem{item}}
}

func (c *Composer) medalOrder() composition {
	product, ok := c.ctx.Products.Pick(c.src, []string{core.KeyMedals}, nil)
	var medalType string
	if ok {
		medalType = medalTypeOf(c.src, product.Name)
	} else {
		product, medalType = c.synthetic.medal()
	}
	unit := product.Price
	if !unit.IsPositive() {
		unit = decimal.NewFromInt(refdata.MedalPricing[medalType])
	}
	qty := c.quantityForSpend(unit, refdata.NonApparelSpendMin, refdata.NonApparelSpendMax, 5, 50)
	item := lineItem(product, "sports_material", unit, qty)
	if item.Category == "" {
		item.Category = "Medals"
	}
	item.MedalType = medalType
	return composition{items: []core.OrderItem{item}}
}

func medalTypeOf(src *random.Source, name string) string {
	lower := strings.ToLower(name)
	for _, t := range refdata.MedalTypes {
		if strings.Contains(lower, t) {
			return t
		}
	}
	return random.Pick(src, refdata.MedalTypes)
}

// legacy builds an order from the static price tables only.
func (c *Composer) legacy() composition {
	isTeam := c.src.Chance(jerseyTeamShare)
	team := random.Pick(c.src, refdata.TeamNames)
	roll := c.src.Float64()

	switch {
	case roll < 0.80:
		sport := "volleyball"
		if c.src.Chance(0.55) {
			sport = "basketball"
		}
		variant := c.variant()
		kidsShare := 0.6
		if isTeam {
			kidsShare = 0.7
		}
		kids := c.src.Chance(kidsShare)
		pricing := refdata.SublimationPricing[sport]
		unit := decimal.NewFromInt(pricing.Adult)
		switch {
		case variant == core.VariantFullSet && kids:
			unit = decimal.NewFromInt(pricing.Kids)
		case variant != core.VariantFullSet && kids:
			unit = decimal.NewFromInt(pricing.UpperKids)
		case variant != core.VariantFullSet:
			unit = decimal.NewFromInt(pricing.UpperAdult)
		}
		size := c.src.IntBetween(1, 5)
		if isTeam {
			size = c.src.IntBetween(minTeamSize, maxTeamSize)
		}
		label := strings.ToUpper(sport[:1]) + sport[1:]
		product := core.Product{Name: fmt.Sprintf("Sublimation Jersey (%s) - %s", variant, label), Category: "sublimation"}
		item := apparelItem(product, "sublimation", unit, c.roster(size, kids, variant, unit, nil))
		item.Sport = label
		item.Variant = variant
		item.SizeType = sizeType(kids)
		item.IsTeamOrder = isTeam
		item.TeamName = team
		return composition{items: []core.OrderItem{item}, isTeam: isTeam, teamName: team}

	case roll < 0.90:
		kids := c.src.Chance(0.3)
		unit := decimal.NewFromInt(refdata.HoodiePricing.Adult)
		if kids {
			unit = decimal.NewFromInt(refdata.HoodiePricing.Kids)
		}
		size := c.src.IntBetween(1, 5)
		if isTeam {
			size = c.src.IntBetween(minTeamSize, maxTeamSize)
		}
		product := core.Product{Name: "Hoodie", Category: "hoodie"}
		item := apparelItem(product, "hoodie", unit, c.roster(size, kids, "", unit, nil))
		item.SizeType = sizeType(kids)
		item.IsTeamOrder = isTeam
		item.TeamName = team
		return composition{items: []core.OrderItem{item}, isTeam: isTeam, teamName: team}
	}

	material := c.src.Float64()
	var item core.OrderItem
	switch {
	case material < 0.4:
		sport := random.Pick(c.src, refdata.BallSports)
		unit := decimal.NewFromInt(refdata.BallPricing[sport])
		name := strings.ToUpper(sport[:1]) + sport[1:] + " Ball"
		item = lineItem(core.Product{Name: name, Category: "sports_materials"}, "sports_material", unit, c.src.IntBetween(5, 20))
		item.Ball = c.ballDetails(name)
	case material < 0.7:
		medal := random.Pick(c.src, refdata.MedalTypes)
		unit := decimal.NewFromInt(refdata.MedalPricing[medal])
		name := strings.ToUpper(medal[:1]) + medal[1:] + " Medal"
		item = lineItem(core.Product{Name: name, Category: "sports_materials"}, "sports_material", unit, c.src.IntBetween(10, 50))
		item.MedalType = medal
	default:
		size := random.Pick(c.src, []string{"small", "medium", "large"})
		unit := decimal.NewFromInt(refdata.TrophyPricing[size])
		name := strings.ToUpper(size[:1]) + size[1:] + " Trophy"
		item = lineItem(core.Product{Name: name, Category: "sports_materials"}, "sports_material", unit, c.src.IntBetween(1, 10))
	}
	return composition{items: []core.OrderItem{item}, isTeam: isTeam, teamName: team}
}

var apparelTypes = map[string]bool{
	"jersey":      true,
	"sublimation": true,
	"tshirt":      true,
	"hoodie":      true,
	"longsleeve":  true,
	"uniform":     true,
}

func hasApparel(items []core.OrderItem) bool {
	for _, it := range items {
		if apparelTypes[it.ProductType] {
			return true
		}
	}
	return false
}

func orderNotes(comp composition) string {
	switch {
	case comp.isTeam && comp.teamName != "":
		return "Team order for " + comp.teamName
	case comp.isTeam:
		return "Team order"
	}
	for _, it := range comp.items {
		if strings.EqualFold(it.Category, "trophies") {
			return "Trophy order"
		}
	}
	for _, it := range comp.items {
		if strings.EqualFold(it.Category, "balls") {
			return "Sports equipment order"
		}
	}
	return "Individual order"
}

// addBusinessDays moves forward days weekdays, skipping Saturdays and Sundays.
func addBusinessDays(t time.Time, days int) time.Time {
	for added := 0; added < days; {
		t = t.AddDate(0, 0, 1)
		if !isWeekend(t) {
			added++
		}
	}
	return t
}

// finish turns a composition into an order: store-hours timestamp, pickup
// branch, delivery address, totals and status.
func (c *Composer) finish(date time.Time, comp composition) core.Order {
	orderedAt := time.Date(date.Year(), date.Month(), date.Day(),
		c.src.IntBetween(8, 18), c.src.Intn(60), c.src.Intn(60), 0, config.Location)
	branch := c.ctx.Branches.Pick(c.src)

	o := core.Order{
		ShippingMethod:  core.ShippingPickup,
		PickupLocation:  branch,
		DeliveryAddress: c.addresses.Synthesize(branch),
		Notes:           orderNotes(comp),
		ShippingCost:    decimal.Zero,
		Items:           comp.items,
		OrderedAt:       orderedAt,
		SettledAt:       orderedAt,
		IsApparel:       hasApparel(comp.items),
	}
	subtotal := decimal.Zero
	for _, it := range comp.items {
		subtotal = subtotal.Add(it.TotalPrice)
		o.TotalItems += it.Quantity
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(o.ShippingCost)

	switch {
	case !c.src.Chance(fulfilledShare):
		o.Status = core.StatusCancelled
	case o.IsApparel:
		pickup := addBusinessDays(orderedAt, c.src.IntBetween(5, 8))
		if pickup.After(c.ctx.Options.Now) {
			o.Status = core.StatusPending
		} else {
			o.Status = core.StatusDelivered
			o.SettledAt = pickup
		}
	default:
		o.Status = core.StatusDelivered
	}
	return o
}
