package app_test

import (
	"fmt"
	"time"

	"globe-quiz-service/internal/domain"
)

var regions = [4]string{"Brittany region", "Normandy region", "Provence region", "Alsace region"}

// frenchQuestion returns a question that passes every pre-check rule.
func frenchQuestion(n int, difficulty domain.Difficulty) domain.Question {
	return domain.Question{
		ID:            fmt.Sprintf("fr-%d", n),
		Text:          fmt.Sprintf("Which region of France matches travel clue number %d?", n),
		OptionA:       regions[0],
		OptionB:       regions[1],
		OptionC:       regions[2],
		OptionD:       regions[3],
		CorrectAnswer: regions[n%4],
		Explanation:   "Each clue points at one French region.",
		Category:      "Geography",
		Difficulty:    difficulty,
		CountryID:     "france",
		CreatedAt:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute),
	}
}

// placeholderQuestion carries template text the content validator rejects.
func placeholderQuestion(n int, difficulty domain.Difficulty) domain.Question {
	q := frenchQuestion(n, difficulty)
	q.Text = fmt.Sprintf("Correct answer for France question %d?", n)
	q.OptionA = "Option A for France"
	q.CorrectAnswer = q.OptionA
	return q
}
