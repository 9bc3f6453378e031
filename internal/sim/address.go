package sim

import (
	"fmt"
	"math"
	"strings"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/geo"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"
)

// City roll thresholds: primary city, same province, any built-in city,
// then a far outlier.
const (
	primaryCityShare  = 0.72
	sameProvinceShare = 0.92
	anyCityShare      = 0.97
	focusShare        = 0.75
)

// Philippine bounding box.
const (
	minLatitude  = 4.5
	maxLatitude  = 21.5
	minLongitude = 116.0
	maxLongitude = 127.0
)

// InPhilippines reports whether a coordinate lies inside the bounding box.
func InPhilippines(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lng) &&
		lat >= minLatitude && lat <= maxLatitude && lng >= minLongitude && lng <= maxLongitude
}

// jitterFor is the width in degrees of the box a synthesized coordinate is
// scattered over around its city centre.
func jitterFor(region string) float64 {
	switch region {
	case "NCR":
		return 0.002
	case "CALABARZON", "MIMAROPA", "Central Luzon":
		return 0.006
	default:
		return 0.01
	}
}

// AddressSynthesizer produces geocoded delivery addresses around a branch.
type AddressSynthesizer struct {
	geo      *geo.Catalog
	branches *BranchPicker
	src      *random.Source
}

// NewAddressSynthesizer takes branch anchors from branches, which may be nil.
func NewAddressSynthesizer(catalog *geo.Catalog, branches *BranchPicker, src *random.Source) *AddressSynthesizer {
	if catalog == nil {
		catalog = geo.Build(nil, nil)
	}
	return &AddressSynthesizer{geo: catalog, branches: branches, src: src}
}

// homeCity is the city a branch serves: its recorded anchor, then the
// built-in branch table, then Batangas City.
func (a *AddressSynthesizer) homeCity(branch string) geo.City {
	if c, ok := geo.FindCity(a.branches.Anchor(branch)); ok {
		return c
	}
	if name, ok := refdata.BranchCities[branchKey(branch)]; ok {
		if c, ok := geo.FindCity(name); ok {
			return c
		}
	}
	return geo.BuiltinCities[0]
}

func (a *AddressSynthesizer) cityFor(branch string) geo.City {
	home := a.homeCity(branch)
	roll := a.src.Float64()
	switch {
	case roll < primaryCityShare:
		return home
	case roll < sameProvinceShare:
		if nearby := geo.CitiesInProvince(home.Province, home.Name); len(nearby) > 0 {
			return random.Pick(a.src, nearby)
		}
		return home
	case roll < anyCityShare:
		return random.Pick(a.src, geo.BuiltinCities)
	default:
		return random.Pick(a.src, geo.FarCities)
	}
}

// barangaysFor resolves barangays from the dataset, falling back to the
// city's built-in list and then the default list.
func (a *AddressSynthesizer) barangaysFor(city geo.City) []geo.Barangay {
	if resolved := a.geo.ResolveBarangays(city.Name, city.Province); len(resolved) > 0 {
		return resolved
	}
	names := city.Barangays
	if strings.EqualFold(city.Name, "Batangas City") {
		names = geo.ExpandedBatangasCityBarangays
	}
	if len(names) == 0 {
		names = geo.DefaultBarangays
	}
	out := make([]geo.Barangay, len(names))
	for i, n := range names {
		out[i] = geo.Barangay{Name: n}
	}
	return out
}

// focus narrows candidates to the branch's focus barangays when any match.
func (a *AddressSynthesizer) focus(branch string, candidates []geo.Barangay) []geo.Barangay {
	names, ok := refdata.BranchFocusBarangays[branchKey(branch)]
	if !ok || !a.src.Chance(focusShare) {
		return candidates
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[geo.NormalizeKey(n)] = true
	}
	var matched []geo.Barangay
	for _, b := range candidates {
		if wanted[geo.NormalizeKey(b.Name)] {
			matched = append(matched, b)
		}
	}
	if len(matched) == 0 {
		return candidates
	}
	return matched
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// coordinates uses the barangay centroid when one is known and inside the
// country, else the city centre jittered by region.
func (a *AddressSynthesizer) coordinates(city geo.City, b geo.Barangay) (float64, float64) {
	var centroid *geo.LatLng
	if b.Centroid != nil {
		centroid = b.Centroid
	} else if p, ok := a.geo.Centroids().Lookup(b.Code, b.CityCode, b.Name); ok {
		centroid = &p
	}
	if centroid != nil {
		lat, lng := round6(centroid.Lat), round6(centroid.Lng)
		if InPhilippines(lat, lng) {
			return lat, lng
		}
	}
	jitter := jitterFor(city.Region)
	lat := round6(city.Lat + (a.src.Float64()-0.5)*jitter)
	lng := round6(city.Lng + (a.src.Float64()-0.5)*jitter)
	return lat, lng
}

// Synthesize builds a delivery address for an order picked up at branch.
// City and Province are always set and the coordinates always fall inside
// the Philippine bounding box.
func (a *AddressSynthesizer) Synthesize(branch string) core.Address {
	city := a.cityFor(branch)
	candidates := a.focus(branch, a.barangaysFor(city))
	b := random.Pick(a.src, candidates)

	street := fmt.Sprintf("%d %s STREET", a.src.IntBetween(1, 999), random.Pick(a.src, refdata.StreetNames))
	postal := a.src.IntBetween(4000, 4500)
	if city.PostalCode > 0 {
		postal = city.PostalCode + a.src.IntBetween(0, 12)
	}
	lat, lng := a.coordinates(city, b)

	addr := core.Address{
		Address:    fmt.Sprintf("%s, %s, %s, %s %d", street, b.Name, city.Name, city.Province, postal),
		Street:     street,
		Barangay:   b.Name,
		City:       city.Name,
		Province:   city.Province,
		Region:     city.Region,
		PostalCode: fmt.Sprint(postal),
		Phone:      phoneNumber(a.src),
		Receiver:   random.Pick(a.src, refdata.FirstNames) + " " + random.Pick(a.src, refdata.LastNames),
		Latitude:   lat,
		Longitude:  lng,
	}
	if b.Code != "" {
		code := b.Code
		addr.BarangayCode = &code
	}
	return addr
}
