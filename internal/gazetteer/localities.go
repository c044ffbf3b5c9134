// Package gazetteer holds the curated catalog of Delhi localities and
// extracts the most likely locality mention from free text.
package gazetteer

// Locality is one catalog entry with its approximate centroid.
type Locality struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// CityCentre is the city-wide fallback used when no locality resolves.
var CityCentre = Locality{Name: "New Delhi", Latitude: 28.6139, Longitude: 77.2090}

// localities is the ordered catalog. Order is a contract: entries are
// listed most-specific first (named sectors and markets before the broad
// areas that contain them) because extraction returns the first entry whose
// name appears in the text. "Dwarka Sector 10" must be checked before
// "Dwarka" or the broader name would always win.
var localities = []Locality{
	// Named sectors and sub-areas
	{Name: "Dwarka Sector 10", Latitude: 28.5870, Longitude: 77.0510},
	{Name: "Dwarka Sector 21", Latitude: 28.5522, Longitude: 77.0585},
	{Name: "Dwarka Sector 7", Latitude: 28.5828, Longitude: 77.0640},
	{Name: "Rohini Sector 24", Latitude: 28.7215, Longitude: 77.0680},
	{Name: "Rohini Sector 7", Latitude: 28.7041, Longitude: 77.1025},
	{Name: "Janakpuri District Centre", Latitude: 28.6292, Longitude: 77.0780},
	{Name: "Greater Kailash 2", Latitude: 28.5342, Longitude: 77.2450},
	{Name: "Greater Kailash 1", Latitude: 28.5494, Longitude: 77.2370},
	{Name: "Mayur Vihar Phase 1", Latitude: 28.6043, Longitude: 77.2910},
	{Name: "Mayur Vihar Phase 3", Latitude: 28.6090, Longitude: 77.3320},

	// Colonies and neighbourhoods
	{Name: "Janakpuri", Latitude: 28.6219, Longitude: 77.0878},
	{Name: "Pitampura", Latitude: 28.7034, Longitude: 77.1318},
	{Name: "Hauz Khas", Latitude: 28.5494, Longitude: 77.2001},
	{Name: "Lajpat Nagar", Latitude: 28.5677, Longitude: 77.2433},
	{Name: "Karol Bagh", Latitude: 28.6519, Longitude: 77.1909},
	{Name: "Connaught Place", Latitude: 28.6315, Longitude: 77.2167},
	{Name: "Vasant Kunj", Latitude: 28.5200, Longitude: 77.1570},
	{Name: "Vasant Vihar", Latitude: 28.5580, Longitude: 77.1590},
	{Name: "Malviya Nagar", Latitude: 28.5355, Longitude: 77.2066},
	{Name: "Mayur Vihar", Latitude: 28.6093, Longitude: 77.2954},
	{Name: "Laxmi Nagar", Latitude: 28.6304, Longitude: 77.2776},
	{Name: "Preet Vihar", Latitude: 28.6412, Longitude: 77.2948},
	{Name: "Uttam Nagar", Latitude: 28.6197, Longitude: 77.0590},
	{Name: "Rajouri Garden", Latitude: 28.6492, Longitude: 77.1207},
	{Name: "Punjabi Bagh", Latitude: 28.6742, Longitude: 77.1311},
	{Name: "Paschim Vihar", Latitude: 28.6662, Longitude: 77.1014},
	{Name: "Tilak Nagar", Latitude: 28.6420, Longitude: 77.0950},
	{Name: "Moti Nagar", Latitude: 28.6580, Longitude: 77.1420},
	{Name: "Kalkaji", Latitude: 28.5494, Longitude: 77.2590},
	{Name: "Govindpuri", Latitude: 28.5360, Longitude: 77.2640},
	{Name: "Sarita Vihar", Latitude: 28.5310, Longitude: 77.2890},
	{Name: "Patparganj", Latitude: 28.6210, Longitude: 77.3070},
	{Name: "Anand Vihar", Latitude: 28.6469, Longitude: 77.3160},
	{Name: "Dilshad Garden", Latitude: 28.6860, Longitude: 77.3210},
	{Name: "Yamuna Vihar", Latitude: 28.6960, Longitude: 77.2740},
	{Name: "Mukherjee Nagar", Latitude: 28.7080, Longitude: 77.2100},
	{Name: "Kamla Nagar", Latitude: 28.6800, Longitude: 77.2050},
	{Name: "Model Town", Latitude: 28.7158, Longitude: 77.1910},
	{Name: "Civil Lines", Latitude: 28.6770, Longitude: 77.2250},
	{Name: "Ashok Vihar", Latitude: 28.6900, Longitude: 77.1770},
	{Name: "Shalimar Bagh", Latitude: 28.7160, Longitude: 77.1560},
	{Name: "Defence Colony", Latitude: 28.5730, Longitude: 77.2300},
	{Name: "Chandni Chowk", Latitude: 28.6506, Longitude: 77.2303},
	{Name: "Paharganj", Latitude: 28.6454, Longitude: 77.2130},
	{Name: "Saket", Latitude: 28.5245, Longitude: 77.2066},
	{Name: "Okhla", Latitude: 28.5355, Longitude: 77.2740},
	{Name: "Mehrauli", Latitude: 28.5216, Longitude: 77.1785},
	{Name: "Badarpur", Latitude: 28.4930, Longitude: 77.3030},
	{Name: "Seelampur", Latitude: 28.6770, Longitude: 77.2670},
	{Name: "Shahdara", Latitude: 28.6734, Longitude: 77.2890},
	{Name: "Najafgarh", Latitude: 28.6090, Longitude: 76.9798},
	{Name: "Narela", Latitude: 28.8527, Longitude: 77.0920},
	{Name: "Burari", Latitude: 28.7530, Longitude: 77.1990},

	// Broad districts, checked last
	{Name: "Dwarka", Latitude: 28.5921, Longitude: 77.0460},
	{Name: "Rohini", Latitude: 28.7495, Longitude: 77.0565},
	{Name: "Greater Kailash", Latitude: 28.5433, Longitude: 77.2420},
}

// Catalog returns the ordered locality catalog.
func Catalog() []Locality {
	return localities
}

// Centroid returns the catalog centroid for a locality name, falling back
// to the city centre for unknown names.
func Centroid(name string) Locality {
	for _, loc := range localities {
		if loc.Name == name {
			return loc
		}
	}
	return CityCentre
}
