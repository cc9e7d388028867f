package app

import (
	"context"
	"fmt"
	"strings"

	"globe-quiz-service/internal/domain"
)

// QuizID builds the playable quiz id for a country and difficulty.
func QuizID(countryID string, difficulty domain.Difficulty) string {
	return countryID + ":" + string(difficulty)
}

// ParseQuizID splits a "country:difficulty" quiz id.
func ParseQuizID(quizID string) (string, domain.Difficulty, error) {
	countryID, rawDifficulty, ok := strings.Cut(quizID, ":")
	if !ok || countryID == "" {
		return "", "", fmt.Errorf("%w: malformed id %q", domain.ErrQuizNotFound, quizID)
	}
	difficulty, err := domain.ParseDifficulty(rawDifficulty)
	if err != nil {
		return "", "", err
	}
	return countryID, difficulty, nil
}

// QuizCatalog serves quiz content out of the question cache.
type QuizCatalog struct {
	cache QuestionCache
	size  int
}

func NewQuizCatalog(cache QuestionCache, size int) *QuizCatalog {
	return &QuizCatalog{cache: cache, size: size}
}

func (c *QuizCatalog) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	countryID, difficulty, err := ParseQuizID(quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	questions := c.cache.GetOrFetch(ctx, countryID, difficulty, c.size)
	if len(questions) == 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return domain.Quiz{
		ID:         quizID,
		CountryID:  countryID,
		Difficulty: difficulty,
		Questions:  questions,
	}, nil
}
