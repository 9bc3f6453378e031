package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// LatLng is a coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// CentroidIndex holds barangay centroids keyed by PSGC code and by
// normalized name. Name keys are either "<cityCode>|<NAME>" or "<NAME>"; the
// first row seen for a key wins.
type CentroidIndex struct {
	ByCode map[string]LatLng
	ByName map[string]LatLng
}

// NewCentroidIndex returns an empty index.
func NewCentroidIndex() *CentroidIndex {
	return &CentroidIndex{ByCode: map[string]LatLng{}, ByName: map[string]LatLng{}}
}

// LoadCentroids reads the first of paths that exists. No file at all yields
// an empty index, not an error.
func LoadCentroids(paths ...string) (*CentroidIndex, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to open centroid file %s: %w", path, err)
		}
		defer f.Close()
		return ParseCentroids(f)
	}
	return NewCentroidIndex(), nil
}

// ParseCentroids reads the centroid CSV. Required headers are latitude and
// longitude plus barangay_psgc and/or barangay_name; city_muni_psgc is used
// for name keys when present. Rows whose coordinates do not parse are dropped.
func ParseCentroids(r io.Reader) (*CentroidIndex, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewCentroidIndex(), nil
		}
		return nil, fmt.Errorf("failed to read centroid header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	idx := NewCentroidIndex()
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read centroid row: %w", err)
		}

		code := field(row, "barangay_psgc")
		name := field(row, "barangay_name")
		if code == "" && name == "" {
			continue
		}
		point, ok := parseLatLng(field(row, "latitude"), field(row, "longitude"))
		if !ok {
			continue
		}

		if code != "" {
			idx.ByCode[code] = point
		}
		if name != "" {
			key := NormalizeKey(name)
			if cityCode := field(row, "city_muni_psgc"); cityCode != "" {
				setIfAbsent(idx.ByName, cityCode+"|"+key, point)
			}
			setIfAbsent(idx.ByName, key, point)
		}
	}
	return idx, nil
}

func parseLatLng(lat, lng string) (LatLng, bool) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || math.IsNaN(la) || math.IsInf(la, 0) {
		return LatLng{}, false
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return LatLng{}, false
	}
	return LatLng{Lat: la, Lng: lo}, true
}

func setIfAbsent(m map[string]LatLng, key string, v LatLng) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

var (
	barangayNumberPattern = regexp.MustCompile(`BARANGAY\d+`)
	poblacionPattern      = regexp.MustCompile(`POBLACION`)
)

// Lookup finds a centroid for a barangay: by code, then by city code and
// name, then by name alone, then by name with the BARANGAY<n>/POBLACION
// decorations stripped.
func (c *CentroidIndex) Lookup(code, cityCode, name string) (LatLng, bool) {
	if c == nil {
		return LatLng{}, false
	}
	if code != "" {
		if p, ok := c.ByCode[code]; ok {
			return p, true
		}
	}
	key := NormalizeKey(name)
	if key == "" {
		return LatLng{}, false
	}
	if p, ok := c.byName(cityCode, key); ok {
		return p, true
	}
	cleaned := poblacionPattern.ReplaceAllString(barangayNumberPattern.ReplaceAllString(key, ""), "")
	if cleaned != "" && cleaned != key {
		return c.byName(cityCode, cleaned)
	}
	return LatLng{}, false
}

func (c *CentroidIndex) byName(cityCode, key string) (LatLng, bool) {
	if cityCode != "" {
		if p, ok := c.ByName[cityCode+"|"+key]; ok {
			return p, true
		}
	}
	p, ok := c.ByName[key]
	return p, ok
}
