// Package geo resolves barangays for a city or province from an optional
// PSGC dataset, enriched with centroids from an optional CSV, and carries the
// built-in city tables used when that data is missing.
package geo

import (
	"regexp"
	"strings"
)

// Barangay is one resolved barangay. Centroid is nil when no coordinate is
// known for it.
type Barangay struct {
	Code         string
	Name         string
	CityCode     string
	ProvinceCode string
	RegionCode   string
	Centroid     *LatLng
}

func (b Barangay) key() string {
	if b.Code != "" {
		return b.Code
	}
	return b.Name + ":" + b.CityCode
}

// barangaySet keeps insertion order so lookups are reproducible.
type barangaySet struct {
	index   map[string]int
	entries []Barangay
}

func newBarangaySet() *barangaySet {
	return &barangaySet{index: map[string]int{}}
}

func (s *barangaySet) put(b Barangay) {
	k := b.key()
	if i, ok := s.index[k]; ok {
		s.entries[i] = b
		return
	}
	s.index[k] = len(s.entries)
	s.entries = append(s.entries, b)
}

func (s *barangaySet) has(k string) bool {
	_, ok := s.index[k]
	return ok
}

func (s *barangaySet) list() []Barangay {
	out := make([]Barangay, len(s.entries))
	copy(out, s.entries)
	return out
}

type cityEntry struct {
	Barangays *barangaySet
}

// Catalog is immutable once built.
type Catalog struct {
	cities        map[string]*cityEntry
	provinces     map[string]*barangaySet
	cityProvinces map[string]*barangaySet
	centroids     *CentroidIndex
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]`)

// NormalizeKey uppercases a name and drops everything but A-Z and 0-9.
func NormalizeKey(v string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(v), "")
}

var (
	cityOfPrefix         = regexp.MustCompile(`(?i)^City of\s+`)
	citySuffix           = regexp.MustCompile(`(?i)\s+City$`)
	municipalityOfPrefix = regexp.MustCompile(`(?i)^Municipality of\s+`)
)

// nameVariants returns the spellings a city may be looked up by.
func nameVariants(name string) []string {
	return []string{
		name,
		cityOfPrefix.ReplaceAllString(name, ""),
		citySuffix.ReplaceAllString(name, ""),
		municipalityOfPrefix.ReplaceAllString(name, ""),
	}
}

// Build indexes ds. Both arguments may be nil.
func Build(ds *Dataset, centroids *CentroidIndex) *Catalog {
	if centroids == nil {
		centroids = NewCentroidIndex()
	}
	c := &Catalog{
		cities:        map[string]*cityEntry{},
		provinces:     map[string]*barangaySet{},
		cityProvinces: map[string]*barangaySet{},
		centroids:     centroids,
	}
	if ds == nil {
		return c
	}

	for _, province := range ds.Provinces {
		provinceKey := NormalizeKey(province.Name)
		provinceSet, ok := c.provinces[provinceKey]
		if !ok {
			provinceSet = newBarangaySet()
			c.provinces[provinceKey] = provinceSet
		}

		for _, lgu := range province.CitiesAndMunicipalities {
			if lgu.Name == "" {
				continue
			}
			entries := make([]Barangay, 0, len(lgu.Barangays))
			for _, b := range lgu.Barangays {
				if b.Name == "" {
					continue
				}
				entry := Barangay{
					Code:         b.Code,
					Name:         b.Name,
					CityCode:     lgu.Code,
					ProvinceCode: province.Code,
					RegionCode:   province.RegionCode,
				}
				if b.Code != "" {
					if p, ok := centroids.ByCode[b.Code]; ok {
						entry.Centroid = &p
					}
				}
				entries = append(entries, entry)
				provinceSet.put(entry)
			}

			seen := map[string]bool{}
			for _, variant := range nameVariants(lgu.Name) {
				cityKey := NormalizeKey(variant)
				if cityKey == "" || seen[cityKey] {
					continue
				}
				seen[cityKey] = true

				combinedKey := provinceKey + "|" + cityKey
				combined, ok := c.cityProvinces[combinedKey]
				if !ok {
					combined = newBarangaySet()
					c.cityProvinces[combinedKey] = combined
				}
				city, ok := c.cities[cityKey]
				if !ok {
					city = &cityEntry{Barangays: newBarangaySet()}
					c.cities[cityKey] = city
				}
				for _, e := range entries {
					combined.put(e)
					city.Barangays.put(e)
				}
			}
		}
	}
	return c
}

// Empty reports whether no dataset was indexed.
func (c *Catalog) Empty() bool {
	return len(c.provinces) == 0
}

// Centroids exposes the centroid index for name-based lookups.
func (c *Catalog) Centroids() *CentroidIndex {
	return c.centroids
}

// ResolveBarangays returns the most specific non-empty match: the
// (province, city) pair, then the city (restricted to the province when
// possible), then the province. It returns nil when nothing matches.
func (c *Catalog) ResolveBarangays(city, province string) []Barangay {
	cityKey := NormalizeKey(city)
	provinceKey := NormalizeKey(province)

	if cityKey != "" && provinceKey != "" {
		if set, ok := c.cityProvinces[provinceKey+"|"+cityKey]; ok && len(set.entries) > 0 {
			return set.list()
		}
	}

	if entry, ok := c.cities[cityKey]; ok && cityKey != "" {
		entries := entry.Barangays.list()
		if provinceSet, ok := c.provinces[provinceKey]; ok && provinceKey != "" {
			var filtered []Barangay
			for _, e := range entries {
				if e.ProvinceCode == "" || provinceSet.has(e.key()) {
					filtered = append(filtered, e)
				}
			}
			if len(filtered) > 0 {
				return filtered
			}
		}
		if len(entries) > 0 {
			return entries
		}
	}

	if set, ok := c.provinces[provinceKey]; ok && provinceKey != "" && len(set.entries) > 0 {
		return set.list()
	}
	return nil
}
