// Package quality holds the pure question-quality rules: fingerprints,
// content patterns, de-duplication and admission pre-checks.
package quality

import (
	"regexp"
	"sort"
	"strings"

	"globe-quiz-service/internal/domain"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s\p{Zs}]`)
	whitespace = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Normalize lower-cases s, strips punctuation and collapses whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fingerprint is the write-path identity of a question: normalized text plus
// the sorted normalized option set, so option order never matters.
func Fingerprint(q domain.Question) string {
	opts := q.Options()
	normalized := make([]string, 0, len(opts))
	for _, opt := range opts {
		normalized = append(normalized, Normalize(opt))
	}
	sort.Strings(normalized)
	return Normalize(q.Text) + "::" + strings.Join(normalized, "|")
}

// TextKey is the read-path identity: question text only.
func TextKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
