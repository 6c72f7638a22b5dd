package search

import "strings"

// cityCodes maps free-text city names (lowercased, trimmed) to the canonical
// location codes the backend expects. This is a best-effort convenience, not
// validation: unrecognized names pass through upper-cased unchanged.
var cityCodes = map[string]string{
	"new york":      "NYC",
	"los angeles":   "LAX",
	"san francisco": "SFO",
	"london":        "LHR",
	"paris":         "CDG",
	"dubai":         "DXB",
	"singapore":     "SIN",
	"delhi":         "DEL",
	"new delhi":     "DEL",
	"mumbai":        "BOM",
	"bangalore":     "BLR",
	"bengaluru":     "BLR",
	"chennai":       "MAA",
	"kolkata":       "CCU",
	"hyderabad":     "HYD",
	"pune":          "PNQ",
	"goa":           "GOI",
	"jaipur":        "JAI",
	"ahmedabad":     "AMD",
	"kochi":         "COK",
}

// NormalizeLocation maps a city name to its location code, or upper-cases
// the input when the table has no entry.
func NormalizeLocation(input string) string {
	trimmed := strings.TrimSpace(input)
	if code, ok := cityCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	return strings.ToUpper(trimmed)
}

// KnownCities returns the normalization table's city names, for callers that
// want to match city mentions in free text.
func KnownCities() []string {
	cities := make([]string, 0, len(cityCodes))
	for name := range cityCodes {
		cities = append(cities, name)
	}
	return cities
}
