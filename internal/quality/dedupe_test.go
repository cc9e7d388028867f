package quality

import (
	"reflect"
	"testing"

	"globe-quiz-service/internal/domain"
)

func TestDedupeByTextFirstOccurrenceWins(t *testing.T) {
	a := domain.PresentationQuestion{ID: "1", Text: "Which river flows through Paris?"}
	b := domain.PresentationQuestion{ID: "2", Text: "  which river flows through paris?  "}
	c := domain.PresentationQuestion{ID: "3", Text: "Which river flows through Lyon?"}

	kept, dropped := DedupeByText([]domain.PresentationQuestion{a, b, c})
	if len(kept) != 2 || kept[0].ID != "1" || kept[1].ID != "3" {
		t.Fatalf("unexpected kept %+v", kept)
	}
	if len(dropped) != 1 || dropped[0].ID != "2" {
		t.Fatalf("unexpected dropped %+v", dropped)
	}
}

func TestDedupeByTextIgnoresOptions(t *testing.T) {
	a := domain.PresentationQuestion{ID: "1", Text: "Same text"}
	b := domain.PresentationQuestion{ID: "2", Text: "Same text"}
	b.Choices[0].Text = "different option"

	kept, _ := DedupeByText([]domain.PresentationQuestion{a, b})
	if len(kept) != 1 {
		t.Fatalf("read path dedupe must ignore options, kept %d", len(kept))
	}
}

func TestDedupeByTextIdempotent(t *testing.T) {
	in := []domain.PresentationQuestion{
		{ID: "1", Text: "A"}, {ID: "2", Text: "b"}, {ID: "3", Text: "a"},
		{ID: "4", Text: "B "}, {ID: "5", Text: "c"},
	}
	once, _ := DedupeByText(in)
	twice, dropped := DedupeByText(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("dedupe not idempotent: %+v vs %+v", once, twice)
	}
	if len(dropped) != 0 {
		t.Fatalf("second pass dropped %d", len(dropped))
	}
}

func TestFingerprintSetCatchesReorderedOptions(t *testing.T) {
	existing := sampleQuestion()
	set := NewFingerprintSet(existing)

	reordered := existing
	reordered.ID = "new"
	reordered.OptionA, reordered.OptionD = existing.OptionD, existing.OptionA
	if !set.Has(Fingerprint(reordered)) {
		t.Fatalf("expected reordered duplicate to be detected")
	}

	fresh := existing
	fresh.OptionD = "The Marne River"
	if !set.Add(Fingerprint(fresh)) {
		t.Fatalf("expected fresh fingerprint to be added")
	}
	if set.Add(Fingerprint(fresh)) {
		t.Fatalf("expected second add to report duplicate")
	}
}
