package quality

import "strings"

// commonCountries is the reference list used to spot questions that talk
// about a different country than the one they are assigned to.
var commonCountries = []string{
	"Argentina", "Australia", "Austria", "Belgium", "Brazil", "Canada", "Chile",
	"China", "Colombia", "Cuba", "Denmark", "Egypt", "Ethiopia", "Finland",
	"France", "Germany", "Greece", "India", "Indonesia", "Iran", "Ireland",
	"Italy", "Japan", "Kenya", "Mexico", "Morocco", "Netherlands", "New Zealand",
	"Nigeria", "Norway", "Pakistan", "Peru", "Philippines", "Poland", "Portugal",
	"Russia", "Saudi Arabia", "South Africa", "South Korea", "Spain", "Sweden",
	"Switzerland", "Thailand", "Turkey", "Ukraine", "United Kingdom",
	"United States", "Vietnam",
}

// mentionedCountry returns the first reference country named in text that is
// not the assigned one.
func mentionedCountry(text, assigned string) (string, bool) {
	lower := strings.ToLower(text)
	assigned = strings.ToLower(assigned)
	for _, name := range commonCountries {
		n := strings.ToLower(name)
		if n == assigned || strings.Contains(assigned, n) {
			continue
		}
		if strings.Contains(lower, n) {
			return name, true
		}
	}
	return "", false
}

// humanizeCountryID turns an id like "united-states" into "united states".
func humanizeCountryID(id string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(id))
}
