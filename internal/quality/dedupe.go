package quality

import "globe-quiz-service/internal/domain"

// dedupeBy keeps the first item for every key, in input order.
func dedupeBy[T any](items []T, key func(T) string) (kept, dropped []T) {
	seen := make(map[string]struct{}, len(items))
	kept = make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			dropped = append(dropped, item)
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, item)
	}
	return kept, dropped
}

// DedupeByText removes questions whose text repeats an earlier one. Options
// are ignored; this is the read-path identity.
func DedupeByText(qs []domain.PresentationQuestion) (kept, dropped []domain.PresentationQuestion) {
	return dedupeBy(qs, func(q domain.PresentationQuestion) string { return TextKey(q.Text) })
}

// FingerprintSet tracks full text+options fingerprints during admission.
type FingerprintSet map[string]struct{}

// NewFingerprintSet seeds a set from already persisted questions.
func NewFingerprintSet(existing ...domain.Question) FingerprintSet {
	s := make(FingerprintSet, len(existing))
	for _, q := range existing {
		s[Fingerprint(q)] = struct{}{}
	}
	return s
}

// Add records fp and reports whether it was new.
func (s FingerprintSet) Add(fp string) bool {
	if _, ok := s[fp]; ok {
		return false
	}
	s[fp] = struct{}{}
	return true
}

func (s FingerprintSet) Has(fp string) bool {
	_, ok := s[fp]
	return ok
}
