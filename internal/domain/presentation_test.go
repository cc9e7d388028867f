package domain

import (
	"errors"
	"testing"
)

func TestPresentMarksSingleCorrectChoice(t *testing.T) {
	q := Question{
		ID:            "q1",
		Text:          "Which river flows through Paris, the capital of France?",
		OptionA:       "The Loire River",
		OptionB:       "The Seine River",
		OptionC:       "The Rhone River",
		OptionD:       "The Garonne River",
		CorrectAnswer: "The Seine River",
		Difficulty:    DifficultyMedium,
	}

	p, err := q.Present()
	if err != nil {
		t.Fatalf("present: %v", err)
	}
	correct := 0
	for _, c := range p.Choices {
		if c.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		t.Fatalf("expected exactly one correct choice, got %d", correct)
	}
	if c, _ := p.CorrectChoice(); c.ID != "b" {
		t.Fatalf("expected choice b correct, got %+v", c)
	}
	if p.Explanation != "The correct answer is The Seine River." {
		t.Fatalf("unexpected default explanation %q", p.Explanation)
	}
}

func TestPresentRejectsMismatchedAnswer(t *testing.T) {
	cases := map[string]Question{
		"no match": {
			ID: "q1", OptionA: "London", OptionB: "Berlin", OptionC: "Madrid", OptionD: "Rome",
			CorrectAnswer: "Paris",
		},
		"two matches": {
			ID: "q2", OptionA: "Paris", OptionB: "Paris", OptionC: "Madrid", OptionD: "Rome",
			CorrectAnswer: "Paris",
		},
	}
	for name, q := range cases {
		if _, err := q.Present(); !errors.Is(err, ErrCorrectAnswerMismatch) {
			t.Fatalf("%s: expected mismatch error, got %v", name, err)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, err := ParseDifficulty(" Hard "); err != nil || d != DifficultyHard {
		t.Fatalf("expected hard, got %q %v", d, err)
	}
	if _, err := ParseDifficulty("extreme"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected invalid difficulty, got %v", err)
	}
}
