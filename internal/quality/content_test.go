package quality

import (
	"testing"

	"globe-quiz-service/internal/domain"
)

func present(t *testing.T, q domain.Question) domain.PresentationQuestion {
	t.Helper()
	p, err := q.Present()
	if err != nil {
		t.Fatalf("present %s: %v", q.ID, err)
	}
	return p
}

func TestValidatorMatchesTemplateLanguage(t *testing.T) {
	v := NewValidator(ProfileLenient)
	tests := []struct {
		name    string
		text    string
		options []string
		want    bool
	}{
		{name: "clean", text: "Which river flows through Paris?", options: []string{"Seine", "Loire"}, want: false},
		{name: "methodology", text: "Which is Methodology B for mapping?", want: true},
		{name: "option for", text: "Pick one", options: []string{"Option C for France"}, want: true},
		{name: "correct answer for", text: "Correct answer for question 3", want: true},
		{name: "hype adjective", text: "Which state-of-the-art port does Spain run?", want: true},
		{name: "advanced word", text: "Which advanced economy borders Canada?", want: true},
		{name: "advancement is fine", text: "Which treaty marked the advancement of borders?", want: false},
		{name: "placeholder case", text: "PLACEHOLDER text", want: true},
		{name: "bracket token is lenient-safe", text: "What is the capital of [country]?", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := v.Match(tt.text, tt.options...)
			if got != tt.want {
				t.Fatalf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStrictProfileIsSuperset(t *testing.T) {
	lenient := NewValidator(ProfileLenient)
	strict := NewValidator(ProfileStrict)

	for _, text := range []string{
		"What is the capital of [country]?",
		"Which city in [capital] hosts the parliament?",
		"Which country leads quantum physics research?",
	} {
		if _, ok := lenient.Match(text); ok {
			t.Fatalf("lenient should not flag %q", text)
		}
		if _, ok := strict.Match(text); !ok {
			t.Fatalf("strict should flag %q", text)
		}
	}
	if _, ok := strict.Match("An innovative approach"); !ok {
		t.Fatalf("strict must include lenient patterns")
	}
}

func TestFilterIsOrderPreservingSubsequence(t *testing.T) {
	v := NewValidator(ProfileLenient)
	good1 := sampleQuestion()
	bad := sampleQuestion()
	bad.ID, bad.Text = "q2", "Which technique is used in France?"
	good2 := sampleQuestion()
	good2.ID, good2.Text = "q3", "Which mountain range separates France from Spain?"

	in := []domain.PresentationQuestion{present(t, good1), present(t, bad), present(t, good2)}
	kept, rejected := v.Filter(in)

	if len(kept) != 2 || kept[0].ID != "q1" || kept[1].ID != "q3" {
		t.Fatalf("unexpected kept set %+v", kept)
	}
	if len(rejected) != 1 || rejected[0].Question.ID != "q2" || rejected[0].Pattern != "technique" {
		t.Fatalf("unexpected rejections %+v", rejected)
	}
}

func TestParseProfile(t *testing.T) {
	if p, err := ParseProfile(""); err != nil || p != ProfileLenient {
		t.Fatalf("expected lenient default, got %q %v", p, err)
	}
	if p, err := ParseProfile("STRICT"); err != nil || p != ProfileStrict {
		t.Fatalf("expected strict, got %q %v", p, err)
	}
	if _, err := ParseProfile("paranoid"); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}
