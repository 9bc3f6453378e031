package refdata

// FallbackBranch is used when no branch list is available at all.
const FallbackBranch = "BATANGAS CITY BRANCH"

// DefaultBranches is used when the branches table is empty or unreadable.
var DefaultBranches = []string{
	"SAN PASCUAL (MAIN BRANCH)", "CALAPAN BRANCH", "MUZON BRANCH",
	"LEMERY BRANCH", "BATANGAS CITY BRANCH", "BAUAN BRANCH",
	"CALACA BRANCH", "PINAMALAYAN BRANCH", "ROSARIO BRANCH",
}

// DefaultBranchWeight applies to branches missing from BranchPriorityWeights.
const DefaultBranchWeight = 1.0

// BranchPriorityWeights is keyed by uppercased branch name.
var BranchPriorityWeights = map[string]float64{
	"BATANGAS CITY BRANCH":      1.8,
	"SAN PASCUAL (MAIN BRANCH)": 1.6,
	"CALAPAN BRANCH":            1.35,
	"LEMERY BRANCH":             1.3,
	"BAUAN BRANCH":              1.28,
	"CALACA BRANCH":             1.28,
	"PINAMALAYAN BRANCH":        1.25,
	"ROSARIO BRANCH":            1.25,
	"MUZON BRANCH":              1.55,
	"SAN LUIS BRANCH":           1.55,
}

// BranchCities maps an uppercased branch name to the uppercased name of the
// city it serves.
var BranchCities = map[string]string{
	"BATANGAS CITY BRANCH":      "BATANGAS CITY",
	"BATANGAS CITY":             "BATANGAS CITY",
	"SAN PASCUAL (MAIN BRANCH)": "SAN PASCUAL",
	"SAN PASCUAL BRANCH":        "SAN PASCUAL",
	"CALAPAN BRANCH":            "CALAPAN",
	"LEMERY BRANCH":             "LEMERY",
	"BAUAN BRANCH":              "BAUAN",
	"CALACA BRANCH":             "CALACA",
	"PINAMALAYAN BRANCH":        "PINAMALAYAN",
	"ROSARIO BRANCH":            "ROSARIO",
	"MUZON BRANCH":              "SAN LUIS",
	"SAN LUIS BRANCH":           "SAN LUIS",
}

// BranchFocusBarangays lists barangays that cluster around a branch, keyed
// by uppercased branch name.
var BranchFocusBarangays = map[string][]string{
	"MUZON BRANCH":    {"Muzon", "San Antonio", "San Jose", "San Nicolas", "Calumpit"},
	"SAN LUIS BRANCH": {"Muzon", "San Antonio", "San Martin", "San Roque"},
}
