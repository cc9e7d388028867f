package quality

import (
	"fmt"
	"regexp"
	"strings"

	"globe-quiz-service/internal/domain"
)

// Profile selects how strict content validation is.
type Profile string

const (
	// ProfileLenient filters questions after a fetch.
	ProfileLenient Profile = "lenient"
	// ProfileStrict is used at admission; it is a superset of lenient.
	ProfileStrict Profile = "strict"
)

// ParseProfile maps a config value to a Profile. Empty means lenient.
func ParseProfile(raw string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ProfileLenient:
		return ProfileLenient, nil
	case ProfileStrict:
		return ProfileStrict, nil
	}
	return "", fmt.Errorf("unknown validation profile %q", raw)
}

type pattern struct {
	label string
	re    *regexp.Regexp
}

func newPattern(label, expr string) pattern {
	return pattern{label: label, re: regexp.MustCompile(expr)}
}

var lenientPatterns = []pattern{
	newPattern("methodology A-D", `(?i)\bmethodology [a-d]\b`),
	newPattern("approach A-D", `(?i)\bapproach [a-d]\b`),
	newPattern("technique", `(?i)technique`),
	newPattern("option A-D for", `(?i)\boption [a-d] for\b`),
	newPattern("correct answer for", `(?i)correct answer for`),
	newPattern("incorrect option", `(?i)incorrect option`),
	newPattern("placeholder", `(?i)placeholder`),
	newPattern("cutting-edge", `(?i)cutting-edge`),
	newPattern("state-of-the-art", `(?i)state-of-the-art`),
	newPattern("innovative", `(?i)\binnovative\b`),
	newPattern("advanced", `(?i)\badvanced\b`),
}

var strictOnlyPatterns = []pattern{
	newPattern("[country]", `(?i)\[country\]`),
	newPattern("[capital]", `(?i)\[capital\]`),
	newPattern("bracket token", `\[[a-z_ ]+\]`),
	newPattern("quantum physics", `(?i)quantum (physics|mechanics)`),
	newPattern("machine learning", `(?i)machine learning`),
	newPattern("blockchain", `(?i)blockchain`),
	newPattern("cryptocurrency", `(?i)cryptocurrenc(y|ies)`),
}

func patternsFor(profile Profile) []pattern {
	if profile == ProfileStrict {
		out := make([]pattern, 0, len(lenientPatterns)+len(strictOnlyPatterns))
		out = append(out, lenientPatterns...)
		return append(out, strictOnlyPatterns...)
	}
	return lenientPatterns
}

// Validator flags questions containing templated or placeholder language.
type Validator struct {
	profile  Profile
	patterns []pattern
}

func NewValidator(profile Profile) *Validator {
	return &Validator{profile: profile, patterns: patternsFor(profile)}
}

// Profile reports the configured strictness.
func (v *Validator) Profile() Profile {
	return v.profile
}

// Match returns the label of the first disqualifying pattern found in the
// question text or any option.
func (v *Validator) Match(text string, options ...string) (string, bool) {
	haystack := strings.Join(append([]string{text}, options...), "\n")
	for _, p := range v.patterns {
		if p.re.MatchString(haystack) {
			return p.label, true
		}
	}
	return "", false
}

// Rejection is a question dropped by Filter and the pattern that caught it.
type Rejection struct {
	Question domain.PresentationQuestion
	Pattern  string
}

// Filter keeps questions with no disqualifying pattern, preserving order.
func (v *Validator) Filter(qs []domain.PresentationQuestion) ([]domain.PresentationQuestion, []Rejection) {
	kept := make([]domain.PresentationQuestion, 0, len(qs))
	var rejected []Rejection
	for _, q := range qs {
		if label, ok := v.Match(q.Text, q.OptionTexts()...); ok {
			rejected = append(rejected, Rejection{Question: q, Pattern: label})
			continue
		}
		kept = append(kept, q)
	}
	return kept, rejected
}
