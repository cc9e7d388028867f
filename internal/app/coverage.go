package app

import (
	"context"
	"fmt"

	"globe-quiz-service/internal/domain"
)

// Coverage decides whether a country's question sets are big enough to play.
type Coverage struct {
	counter QuestionCounter
	minimum int
}

func NewCoverage(counter QuestionCounter, minimum int) *Coverage {
	return &Coverage{counter: counter, minimum: minimum}
}

// Report returns the count and readiness of every difficulty for countryID.
func (c *Coverage) Report(ctx context.Context, countryID string) (domain.CoverageReport, error) {
	counts, err := c.counter.CountByDifficulty(ctx, countryID)
	if err != nil {
		return domain.CoverageReport{}, fmt.Errorf("count questions for %s: %w", countryID, err)
	}
	report := domain.CoverageReport{CountryID: countryID, Minimum: c.minimum}
	for _, d := range domain.Difficulties {
		n := counts[d]
		report.Levels = append(report.Levels, domain.DifficultyCoverage{
			Difficulty: d,
			Count:      n,
			Ready:      n >= c.minimum,
		})
	}
	return report, nil
}
