package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Dataset is the provinces -> cities/municipalities -> barangays hierarchy as
// exported from the PSGC listing.
type Dataset struct {
	Provinces []DatasetProvince `json:"provinces"`
}

type DatasetProvince struct {
	Name                    string        `json:"name"`
	Code                    string        `json:"code"`
	RegionCode              string        `json:"regionCode"`
	RegionName              string        `json:"regionName"`
	CitiesAndMunicipalities []DatasetCity `json:"citiesAndMunicipalities"`
}

type DatasetCity struct {
	Name      string            `json:"name"`
	Code      string            `json:"code"`
	Barangays []DatasetBarangay `json:"barangays"`
}

type DatasetBarangay struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// LoadDataset reads a dataset file. A missing file is not an error: it
// returns nil and the catalog degrades to the built-in city lists.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open barangay dataset %s: %w", path, err)
	}
	defer f.Close()
	return ParseDataset(f)
}

// ParseDataset decodes a dataset from r.
func ParseDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode barangay dataset: %w", err)
	}
	return &ds, nil
}
