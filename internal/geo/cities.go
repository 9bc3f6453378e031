package geo

import "strings"

// City is a built-in city with its centroid, base postal code, and a short
// barangay list used when no dataset covers it.
type City struct {
	Name       string
	Province   string
	Region     string
	PostalCode int
	Lat        float64
	Lng        float64
	Barangays  []string
}

// BuiltinCities are the cities around the branches, always available.
var BuiltinCities = []City{
	{Name: "Batangas City", Province: "Batangas", Region: "CALABARZON", PostalCode: 4200, Lat: 13.7565, Lng: 121.0583, Barangays: []string{
		"Alangilan", "Balagtas", "Barangay 1 (Poblacion)", "Barangay 2 (Poblacion)", "Barangay 3 (Poblacion)",
		"Barangay 4 (Poblacion)", "Bolbok", "Concepcion", "Gulod Labac", "Kumintang Ibaba", "Kumintang Ilaya",
		"Malitam", "Pallocan West", "San Agapito", "San Isidro",
	}},
	{Name: "San Pascual", Province: "Batangas", Region: "CALABARZON", PostalCode: 4204, Lat: 13.8011, Lng: 121.016, Barangays: []string{
		"Antipolo", "Banaba", "Ilat North", "Ilat South", "Mabini", "Mataas na Lupa", "Natunuan North",
		"Natunuan South", "Payapa", "Poblacion", "San Antonio", "San Mateo", "Santa Cruz", "Santo Niño", "Tilos",
	}},
	{Name: "San Luis", Province: "Batangas", Region: "CALABARZON", PostalCode: 4210, Lat: 13.822, Lng: 120.918, Barangays: []string{
		"Abelo", "Aplaya", "Bagong Tubig", "Balite", "Banoyo", "Boboy", "Bolbok", "Calumpang", "Calumpit",
		"Cumba", "Durungao", "Hugom", "Mahabang Parang", "Muzon", "Nagsaulay", "San Antonio", "San Isidro",
		"San Jose", "San Martin", "San Miguel", "San Nicolas", "San Pedro", "San Roque", "San Vicente", "Talaga", "Ticalan",
	}},
	{Name: "Lemery", Province: "Batangas", Region: "CALABARZON", PostalCode: 4209, Lat: 13.9445, Lng: 120.9139, Barangays: []string{
		"Bagong Sikat", "Barangay 1 (Poblacion)", "Barangay 2 (Poblacion)", "Barangay 3 (Poblacion)",
		"Barangay 4 (Poblacion)", "Bucal", "Cahilan 1", "Cahilan 2", "District I (Poblacion)", "Maguihan",
		"Mataas na Bayan", "Morong", "Palanas", "Sangalang", "Wawa",
	}},
	{Name: "Bauan", Province: "Batangas", Region: "CALABARZON", PostalCode: 4201, Lat: 13.7894, Lng: 121.0084, Barangays: []string{
		"Aplaya", "Apacay", "Bolo", "Cupang", "Gulibay", "Ilihan", "Locloc", "Manghinao Proper", "Manghinao Uno",
		"Poblacion 1", "Poblacion 2", "Poblacion 3", "Poblacion 4", "Sampaguita", "San Andres Proper",
	}},
	{Name: "Calaca", Province: "Batangas", Region: "CALABARZON", PostalCode: 4212, Lat: 13.9324, Lng: 120.8134, Barangays: []string{
		"Baclas", "Bagong Pook", "Balimbing", "Barangay 1 (Poblacion)", "Barangay 2 (Poblacion)",
		"Barangay 3 (Poblacion)", "Calantas", "Camastilisan", "Dacanlao", "Lumbang Calzada", "Lumbang Nazaret",
		"Madalunot", "Munting Coral", "Pantay", "Talisay",
	}},
	{Name: "Rosario", Province: "Batangas", Region: "CALABARZON", PostalCode: 4225, Lat: 13.846, Lng: 121.2058, Barangays: []string{
		"Antipolo", "Bagong Pook", "Balibago", "Bayawang", "Calantas", "Itlugan", "Lumbangan", "Maalas-as",
		"Malaya", "Masaya", "Namuco", "Poblacion A", "Poblacion B", "San Carlos", "Tiquiwan",
	}},
	{Name: "Lipa", Province: "Batangas", Region: "CALABARZON", PostalCode: 4217, Lat: 13.9411, Lng: 121.1631, Barangays: []string{
		"Adya", "Anilao Proper", "Balintawak", "Banaybanay", "Bo. Obrero (Poblacion)", "Dagatan", "Latag",
		"Mataas na Lupa", "Sabang", "San Carlos", "San Celestino", "San Jose", "San Salvador", "Santo Toribio",
		"Barangay 7 (Poblacion)",
	}},
	{Name: "Tanauan", Province: "Batangas", Region: "CALABARZON", PostalCode: 4232, Lat: 14.0866, Lng: 121.1495, Barangays: []string{
		"Bagumbayan", "Balele", "Bilogo", "Darasa", "Gonzales", "Laurel", "Poblacion 1", "Poblacion 3", "Sala",
		"Sampalukan", "Sulpoc", "Talaga", "Tinurik", "Ulango", "Wawa",
	}},
	{Name: "Calapan", Province: "Oriental Mindoro", Region: "MIMAROPA", PostalCode: 5200, Lat: 13.41, Lng: 121.18, Barangays: []string{
		"Bayanan I", "Bayanan II", "Balite", "Balingayan", "Baruyan", "Calero", "Camansihan", "Guinobatan",
		"Ibaba East", "Ibaba West", "Lalud", "Lumangbayan", "Navotas", "Pachoca", "San Vicente",
	}},
	{Name: "Pinamalayan", Province: "Oriental Mindoro", Region: "MIMAROPA", PostalCode: 5208, Lat: 13.0007, Lng: 121.4166, Barangays: []string{
		"Buli", "Cacawan", "Guinhawa", "Malaya", "Maligaya", "Maningcol", "Marfrancisco", "Pacheco", "Panggulayan",
		"Poblacion I", "Poblacion II", "Ranzo", "Rosario", "Santa Maria", "Sto. Niño",
	}},
	{Name: "San Jose del Monte City", Province: "Bulacan", Region: "Central Luzon", PostalCode: 3023, Lat: 14.8133, Lng: 121.0459, Barangays: []string{
		"Bagong Buhay I", "Bagong Buhay II", "Bagong Buhay III", "Citrus", "Graceville", "Minuyan Proper", "Muzon",
		"San Manuel", "San Martin I", "San Martin II", "San Martin III", "San Martin IV", "San Pedro",
		"Santo Cristo", "Sapang Palay Proper",
	}},
	{Name: "Santa Rosa", Province: "Laguna", Region: "CALABARZON", PostalCode: 4026, Lat: 14.3122, Lng: 121.1119, Barangays: []string{
		"Balibago", "Tagapo", "Malusak", "Dila", "Santo Domingo",
	}},
	{Name: "Calamba", Province: "Laguna", Region: "CALABARZON", PostalCode: 4027, Lat: 14.2117, Lng: 121.1652, Barangays: []string{
		"Poblacion 1", "Pansol", "Looc", "Canlubang", "Makiling",
	}},
	{Name: "Nasugbu", Province: "Batangas", Region: "CALABARZON", PostalCode: 4231, Lat: 14.0676, Lng: 120.6307, Barangays: []string{
		"Poblacion 2", "Wawa", "Looc", "Biliran", "Calayaan",
	}},
	{Name: "Balayan", Province: "Batangas", Region: "CALABARZON", PostalCode: 4213, Lat: 13.9377, Lng: 120.7321, Barangays: []string{
		"Barangay 1", "Dacanlao", "Calzada", "Magabe", "Palikpikan",
	}},
	{Name: "Sto. Tomas", Province: "Batangas", Region: "CALABARZON", PostalCode: 4234, Lat: 14.1086, Lng: 121.1419, Barangays: []string{
		"Poblacion Barangay 1", "San Roque", "Santa Teresita", "San Pedro", "San Miguel",
	}},
}

// FarCities are out-of-region outliers.
var FarCities = []City{
	{Name: "Quezon City", Province: "Metro Manila", Region: "NCR", PostalCode: 1100, Lat: 14.676, Lng: 121.0437, Barangays: []string{
		"Project 4", "Batasan Hills", "Cubao", "Talipapa", "Matandang Balara",
	}},
	{Name: "Cebu City", Province: "Cebu", Region: "Central Visayas", PostalCode: 6000, Lat: 10.3157, Lng: 123.8854, Barangays: []string{
		"Lahug", "Guadalupe", "Banilad", "Mabolo", "Apas",
	}},
	{Name: "Davao City", Province: "Davao del Sur", Region: "Davao Region", PostalCode: 8000, Lat: 7.1907, Lng: 125.4553, Barangays: []string{
		"Buhangin", "Talomo", "Toril", "Agdao", "Baguio",
	}},
	{Name: "Iloilo City", Province: "Iloilo", Region: "Western Visayas", PostalCode: 5000, Lat: 10.7202, Lng: 122.5621, Barangays: []string{
		"Jaro", "La Paz", "Mandurriao", "Molo", "City Proper",
	}},
	{Name: "Baguio City", Province: "Benguet", Region: "CAR", PostalCode: 2600, Lat: 16.4023, Lng: 120.596, Barangays: []string{
		"Irisan", "Loakan", "Aurora Hill", "Camp 7", "Legarda",
	}},
}

// DefaultBarangays is the last-resort list for a city with no data at all.
var DefaultBarangays = []string{
	"Poblacion", "Barangay 1", "San Roque", "San Jose", "San Antonio",
	"San Miguel", "San Isidro", "Dalig", "Balagtas", "Santa Cruz",
	"Santa Maria", "Sampaguita", "Maligaya", "Centro",
}

// ExpandedBatangasCityBarangays replaces the short built-in list for
// Batangas City when no dataset is loaded.
var ExpandedBatangasCityBarangays = []string{
	"Alangilan", "Balagtas", "Barangay 1 (Poblacion)", "Barangay 2 (Poblacion)",
	"Barangay 3 (Poblacion)", "Barangay 4 (Poblacion)", "Barangay 5 (Poblacion)",
	"Barangay 6 (Poblacion)", "Barangay 7 (Poblacion)", "Barangay 8 (Poblacion)",
	"Barangay 9 (Poblacion)", "Barangay 10 (Poblacion)", "Barangay 11 (Poblacion)",
	"Barangay 12 (Poblacion)", "Bolbok", "Concepcion", "Concepcion Ibaba",
	"Concepcion Ilaya", "Cuta", "Gulod Labac", "Kumintang Ibaba", "Kumintang Ilaya",
	"Malitam", "Pallocan West", "Pallocan East", "San Agapito", "San Isidro",
	"San Jose Sico", "San Pedro", "Santa Clara", "Santa Rita Aplaya",
	"Santo Domingo", "Sinala", "Tabangao", "Tabangao Aplaya", "Tabangao Ambulong",
	"Talahib Pandayan", "Talahib Payapa", "Wawa", "Wawa Ibaba", "Wawa Ilaya",
}

// FindCity looks a city up by name, case-insensitively, in the built-in and
// far lists.
func FindCity(name string) (City, bool) {
	if name == "" {
		return City{}, false
	}
	upper := strings.ToUpper(name)
	for _, list := range [][]City{BuiltinCities, FarCities} {
		for _, c := range list {
			if strings.ToUpper(c.Name) == upper {
				return c, true
			}
		}
	}
	return City{}, false
}

// CitiesInProvince returns built-in cities in province, excluding the named city.
func CitiesInProvince(province, exclude string) []City {
	var out []City
	for _, c := range BuiltinCities {
		if c.Province == province && !strings.EqualFold(c.Name, exclude) {
			out = append(out, c)
		}
	}
	return out
}
