package quality

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"globe-quiz-service/internal/domain"
)

// Severity ranks pre-check findings: critical > high > medium > low.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	}
	return 0
}

// Worse returns the more severe of s and other.
func (s Severity) Worse(other Severity) Severity {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// Candidate is a question about to be admitted plus its resolved country name.
type Candidate struct {
	Question    domain.Question `json:"question"`
	CountryName string          `json:"countryName,omitempty"`
}

// Report is the outcome of a pre-check.
type Report struct {
	IsValid         bool     `json:"isValid"`
	Issues          []string `json:"issues"`
	Severity        Severity `json:"severity"`
	Recommendations []string `json:"recommendations"`
}

func (r *Report) add(sev Severity, issue, recommendation string) {
	r.Issues = append(r.Issues, issue)
	r.Recommendations = append(r.Recommendations, recommendation)
	r.Severity = r.Severity.Worse(sev)
}

var placeholderPatterns = []pattern{
	newPattern("correct answer for", `(?i)correct answer for`),
	newPattern("option A-D for", `(?i)\boption [a-d] for\b`),
	newPattern("incorrect option", `(?i)incorrect option`),
	newPattern("[country]", `(?i)\[country\]`),
	newPattern("[capital]", `(?i)\[capital\]`),
	newPattern("placeholder", `(?i)placeholder`),
}

const (
	shortTemplatePrefix = "what is the"
	shortTemplateMaxLen = 50
	terseOptionLen      = 10
)

// PreChecker scores candidates before they are persisted. It has no side
// effects and is safe for concurrent use.
type PreChecker struct {
	content *Validator
}

// NewPreChecker builds a checker whose template/off-topic rule uses profile.
func NewPreChecker(profile Profile) *PreChecker {
	return &PreChecker{content: NewValidator(profile)}
}

// Check applies every rule and accumulates the issues found.
func (p *PreChecker) Check(c Candidate) Report {
	q := c.Question
	opts := q.Options()
	report := Report{Severity: SeverityLow}
	fields := append([]string{q.Text}, opts[:]...)

	placeholder := false
	for _, f := range fields {
		if label, ok := firstMatch(placeholderPatterns, f); ok {
			report.add(SeverityCritical,
				fmt.Sprintf("contains placeholder text %q", label),
				"Replace template placeholders with real facts about the country.")
			placeholder = true
			break
		}
	}

	text := strings.TrimSpace(q.Text)
	if strings.HasPrefix(strings.ToLower(text), shortTemplatePrefix) && utf8.RuneCountInString(text) < shortTemplateMaxLen {
		report.add(SeverityHigh,
			"question is a short generic \"what is the\" template",
			fmt.Sprintf("Add context so the question is specific and at least %d characters long.", shortTemplateMaxLen))
	}

	assigned := c.CountryName
	if assigned == "" {
		assigned = humanizeCountryID(q.CountryID)
	}
	if assigned != "" && !strings.Contains(strings.ToLower(q.Text), strings.ToLower(assigned)) {
		if other, ok := mentionedCountry(q.Text, assigned); ok {
			report.add(SeverityHigh,
				fmt.Sprintf("question mentions %s but is assigned to %s", other, assigned),
				"Check the country assignment or rewrite the question.")
		}
	}

	terse := true
	for _, opt := range opts {
		if utf8.RuneCountInString(opt) >= terseOptionLen {
			terse = false
			break
		}
	}
	if terse {
		report.add(SeverityMedium,
			fmt.Sprintf("all options are shorter than %d characters", terseOptionLen),
			"Use more descriptive answer options.")
	}

	if hasDuplicateOption(opts) {
		report.add(SeverityLow, "options are not unique", "Make every option distinct.")
	}

	if !placeholder {
		if label, ok := p.content.Match(q.Text, opts[:]...); ok {
			report.add(SeverityHigh,
				fmt.Sprintf("contains template or off-topic language %q", label),
				"Remove generic or off-topic wording.")
		}
	}

	if !containsExact(opts, q.CorrectAnswer) {
		report.add(SeverityCritical,
			fmt.Sprintf("correct answer %q is not one of the options", q.CorrectAnswer),
			"Set the correct answer to the exact text of one option.")
		report.Severity = SeverityCritical
	}

	report.IsValid = len(report.Issues) == 0
	return report
}

func firstMatch(patterns []pattern, s string) (string, bool) {
	for _, p := range patterns {
		if p.re.MatchString(s) {
			return p.label, true
		}
	}
	return "", false
}

func hasDuplicateOption(opts [4]string) bool {
	seen := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		o := strings.TrimSpace(opt)
		if _, ok := seen[o]; ok {
			return true
		}
		seen[o] = struct{}{}
	}
	return false
}

func containsExact(opts [4]string, answer string) bool {
	for _, opt := range opts {
		if opt == answer {
			return true
		}
	}
	return false
}
