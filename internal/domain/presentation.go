package domain

import "fmt"

// Choice is one answer option as shown to a player.
type Choice struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// PresentationQuestion is the quiz-ready shape of a Question.
type PresentationQuestion struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Choices     [4]Choice  `json:"choices"`
	Explanation string     `json:"explanation"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

var choiceIDs = [4]string{"a", "b", "c", "d"}

// Present converts a persisted question into presentation form. Exactly one
// choice must end up correct, otherwise ErrCorrectAnswerMismatch is returned.
func (q Question) Present() (PresentationQuestion, error) {
	out := PresentationQuestion{
		ID:          q.ID,
		Text:        q.Text,
		Explanation: q.Explanation,
		Category:    q.Category,
		Difficulty:  q.Difficulty,
		ImageURL:    q.ImageURL,
	}
	correct := 0
	for i, opt := range q.Options() {
		isCorrect := opt == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		out.Choices[i] = Choice{ID: choiceIDs[i], Text: opt, IsCorrect: isCorrect}
	}
	if correct != 1 {
		return PresentationQuestion{}, fmt.Errorf("question %s: %w (%d matches)", q.ID, ErrCorrectAnswerMismatch, correct)
	}
	if out.Explanation == "" {
		out.Explanation = fmt.Sprintf("The correct answer is %s.", q.CorrectAnswer)
	}
	return out, nil
}

// OptionTexts returns the choice texts in display order.
func (p PresentationQuestion) OptionTexts() []string {
	texts := make([]string, 0, len(p.Choices))
	for _, c := range p.Choices {
		texts = append(texts, c.Text)
	}
	return texts
}

// CorrectChoice returns the single correct choice.
func (p PresentationQuestion) CorrectChoice() (Choice, bool) {
	for _, c := range p.Choices {
		if c.IsCorrect {
			return c, true
		}
	}
	return Choice{}, false
}
