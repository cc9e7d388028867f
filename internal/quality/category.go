package quality

import "strings"

// DefaultCategory is used when a question arrives without a label.
const DefaultCategory = "General"

var categoryKeywords = []struct {
	category string
	prefixes []string
}{
	{"Geography", []string{"geograph", "river", "mountain", "capital", "border", "lake", "island", "climate", "landmark", "city", "cities"}},
	{"History", []string{"histor", "war", "empire", "independence", "ancient", "revolution", "dynasty"}},
	{"Culture", []string{"cultur", "tradition", "festival", "art", "music", "religion", "language", "literature"}},
	{"Food", []string{"food", "cuisine", "dish", "drink"}},
	{"Sports", []string{"sport", "football", "soccer", "olympic"}},
	{"Economy", []string{"econom", "currency", "export", "industry", "trade"}},
	{"Politics", []string{"politic", "government", "president", "parliament", "monarch"}},
	{"Nature", []string{"nature", "wildlife", "animal", "flora", "fauna", "park"}},
}

// NormalizeCategory maps a free-text label onto the canonical category whose
// keyword table it matches. Unknown labels are returned trimmed with ok=false.
func NormalizeCategory(label string) (string, bool) {
	tokens := strings.Fields(Normalize(label))
	if len(tokens) == 0 {
		return DefaultCategory, false
	}
	for _, entry := range categoryKeywords {
		for _, tok := range tokens {
			for _, prefix := range entry.prefixes {
				if strings.HasPrefix(tok, prefix) {
					return entry.category, true
				}
			}
		}
	}
	return strings.TrimSpace(label), false
}
