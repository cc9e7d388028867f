package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/quality"
)

// rawFetchFactor leaves headroom for rows dropped by validation and dedupe.
const rawFetchFactor = 3

// Fetcher reads questions from the store and shapes them for the quiz UI.
type Fetcher struct {
	store     QuestionReader
	validator *quality.Validator
	timeout   time.Duration
	log       *zap.Logger
}

type FetcherOption func(*Fetcher)

// WithReadProfile sets the validator profile used when ValidateContent is requested.
func WithReadProfile(p quality.Profile) FetcherOption {
	return func(f *Fetcher) { f.validator = quality.NewValidator(p) }
}

// WithFetchTimeout bounds each store call.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

func WithFetchLogger(log *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

func NewFetcher(store QuestionReader, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		store:     store,
		validator: quality.NewValidator(quality.ProfileLenient),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Query returns the shaped questions or the store error.
func (f *Fetcher) Query(ctx context.Context, filter domain.QuestionFilter) ([]domain.PresentationQuestion, error) {
	query := domain.QuestionQuery{
		CountryID:   filter.CountryID,
		Difficulty:  filter.Difficulty,
		Category:    filter.Category,
		ExcludeEasy: filter.ExcludeEasy,
	}
	if filter.Limit > 0 {
		query.Limit = filter.Limit * rawFetchFactor
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	rows, err := f.store.ListQuestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	questions := make([]domain.PresentationQuestion, 0, len(rows))
	for _, row := range rows {
		p, err := row.Present()
		if err != nil {
			f.log.Warn("dropping malformed question", zap.String("question_id", row.ID), zap.Error(err))
			continue
		}
		questions = append(questions, p)
	}

	if filter.ValidateContent {
		kept, rejected := f.validator.Filter(questions)
		for _, r := range rejected {
			f.log.Info("filtered templated question",
				zap.String("question_id", r.Question.ID),
				zap.String("pattern", r.Pattern))
		}
		questions = kept
	}

	questions, dropped := quality.DedupeByText(questions)
	for _, d := range dropped {
		f.log.Debug("dropped duplicate question", zap.String("question_id", d.ID))
	}

	if filter.Limit > 0 && len(questions) > filter.Limit {
		questions = questions[:filter.Limit]
	}
	return questions, nil
}

// Fetch is the fail-soft form of Query: store failures yield an empty list.
func (f *Fetcher) Fetch(ctx context.Context, filter domain.QuestionFilter) []domain.PresentationQuestion {
	questions, err := f.Query(ctx, filter)
	if err != nil {
		f.log.Error("fetch questions failed",
			zap.String("country_id", filter.CountryID),
			zap.String("difficulty", string(filter.Difficulty)),
			zap.Error(err))
		return []domain.PresentationQuestion{}
	}
	return questions
}
