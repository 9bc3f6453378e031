package sim

import (
	"strings"
	"testing"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/geo"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `{
  "provinces": [{
    "code": "0410000000", "name": "Batangas", "regionCode": "0400000000", "regionName": "CALABARZON",
    "citiesAndMunicipalities": [{
      "code": "0401005000", "name": "San Luis",
      "barangays": [
        {"code": "0401005001", "name": "Muzon"},
        {"code": "0401005002", "name": "San Antonio"},
        {"code": "0401005003", "name": "Abelo"},
        {"code": "0401005004", "name": "Aplaya"}
      ]
    }]
  }]
}`

const testCentroids = `barangay_psgc,barangay_name,city_muni_psgc,latitude,longitude
0401005001,Muzon,0401005000,13.8301,120.9202
0401005002,San Antonio,0401005000,13.8222,120.9111
0401005003,Abelo,0401005000,91.0,500.0
`

func TestAddressSynthesizer_AlwaysInsideCountry(t *testing.T) {
	a := NewAddressSynthesizer(nil, nil, random.New(21))
	for i := 0; i < 3000; i++ {
		branch := refdata.DefaultBranches[i%len(refdata.DefaultBranches)]
		addr := a.Synthesize(branch)
		require.NotEmpty(t, addr.City)
		require.NotEmpty(t, addr.Province)
		require.NotEmpty(t, addr.Region)
		require.NotEmpty(t, addr.Barangay)
		require.True(t, InPhilippines(addr.Latitude, addr.Longitude), "%+v", addr)
		require.Contains(t, addr.Address, addr.City)
		require.Len(t, addr.PostalCode, 4)
		require.True(t, strings.HasSuffix(addr.Street, " STREET"))
	}
}

func TestAddressSynthesizer_MostlyBranchCity(t *testing.T) {
	a := NewAddressSynthesizer(nil, nil, random.New(22))
	home, far := 0, 0
	const n = 4000
	for i := 0; i < n; i++ {
		addr := a.Synthesize("CALAPAN BRANCH")
		if addr.City == "Calapan" {
			home++
		}
		for _, c := range geo.FarCities {
			if addr.City == c.Name {
				far++
			}
		}
	}
	assert.InDelta(t, 0.72, float64(home)/n, 0.05)
	assert.InDelta(t, 0.03, float64(far)/n, 0.015)
}

func TestAddressSynthesizer_UsesDatasetAndCentroids(t *testing.T) {
	ds, err := geo.ParseDataset(strings.NewReader(testDataset))
	require.NoError(t, err)
	centroids, err := geo.ParseCentroids(strings.NewReader(testCentroids))
	require.NoError(t, err)
	catalog := geo.Build(ds, centroids)

	a := NewAddressSynthesizer(catalog, nil, random.New(23))
	focus := 0
	datasetHits := 0
	for i := 0; i < 2000; i++ {
		addr := a.Synthesize("MUZON BRANCH")
		if addr.City != "San Luis" {
			continue
		}
		datasetHits++
		require.NotNil(t, addr.BarangayCode)
		switch addr.Barangay {
		case "Muzon":
			focus++
			assert.Equal(t, 13.8301, addr.Latitude)
			assert.Equal(t, 120.9202, addr.Longitude)
		case "San Antonio":
			focus++
		case "Abelo":
			// Out-of-range centroid is dropped; the jittered city centre is used.
			assert.InDelta(t, 13.822, addr.Latitude, 0.01)
		}
	}
	require.Positive(t, datasetHits)
	// 75% focus restriction plus the uniform draw over the rest.
	assert.Greater(t, float64(focus)/float64(datasetHits), 0.75)
}

func TestAddressSynthesizer_BatangasFallbackList(t *testing.T) {
	a := NewAddressSynthesizer(nil, nil, random.New(24))
	city, _ := geo.FindCity("Batangas City")
	got := a.barangaysFor(city)
	assert.Len(t, got, len(geo.ExpandedBatangasCityBarangays))

	got = a.barangaysFor(geo.City{Name: "Nowhere", Province: "Nowhere"})
	assert.Len(t, got, len(geo.DefaultBarangays))
}

func TestJitterFor(t *testing.T) {
	assert.Equal(t, 0.002, jitterFor("NCR"))
	assert.Equal(t, 0.006, jitterFor("CALABARZON"))
	assert.Equal(t, 0.006, jitterFor("MIMAROPA"))
	assert.Equal(t, 0.01, jitterFor("Davao Region"))
}

func TestAddressSynthesizer_UsesBranchAnchor(t *testing.T) {
	branches := NewBranchPicker([]core.Branch{
		{Name: "TANAUAN BRANCH", City: "Tanauan"},
		{Name: "CALAPAN BRANCH", City: "Atlantis"},
	}, refdata.BranchPriorityWeights)
	a := NewAddressSynthesizer(nil, branches, random.New(25))

	assert.Equal(t, "Tanauan", a.homeCity("tanauan branch").Name)
	// An anchor that is not a known city falls back to the branch table.
	assert.Equal(t, "Calapan", a.homeCity("CALAPAN BRANCH").Name)
	assert.Equal(t, "Batangas City", a.homeCity("NOWHERE BRANCH").Name)

	home := 0
	const n = 3000
	for i := 0; i < n; i++ {
		if a.Synthesize("TANAUAN BRANCH").City == "Tanauan" {
			home++
		}
	}
	assert.InDelta(t, 0.72, float64(home)/n, 0.05)
}
