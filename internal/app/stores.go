package app

import (
	"context"

	"globe-quiz-service/internal/domain"
)

// QuestionReader runs filtered, newest-first question lookups.
type QuestionReader interface {
	ListQuestions(ctx context.Context, q domain.QuestionQuery) ([]domain.Question, error)
}

// QuestionWriter is the persistence surface batch admission needs.
type QuestionWriter interface {
	ListByCountry(ctx context.Context, countryID string) ([]domain.Question, error)
	DeleteByCountry(ctx context.Context, countryID string) (int, error)
	InsertQuestions(ctx context.Context, questions []domain.Question) (int, error)
}

// QuestionCounter reports how many questions a country holds per difficulty.
type QuestionCounter interface {
	CountByDifficulty(ctx context.Context, countryID string) (map[domain.Difficulty]int, error)
}

// CountryDirectory resolves country ids to reference rows.
type CountryDirectory interface {
	GetCountry(ctx context.Context, id string) (domain.Country, error)
}

// CountryLister enumerates the country reference table.
type CountryLister interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
}

// QuestionCache serves presentation questions for one country and level,
// fetching through to the store when its entry is missing or stale.
type QuestionCache interface {
	GetOrFetch(ctx context.Context, countryID string, difficulty domain.Difficulty, limit int) []domain.PresentationQuestion
}

// CacheInvalidator drops cached lists for a country once its questions change.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, countryID string) error
}
