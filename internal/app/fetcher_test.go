package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/infra/memory"
	"globe-quiz-service/internal/quality"
)

type recordingReader struct {
	app.QuestionReader
	queries []domain.QuestionQuery
}

func (r *recordingReader) ListQuestions(ctx context.Context, q domain.QuestionQuery) ([]domain.Question, error) {
	r.queries = append(r.queries, q)
	return r.QuestionReader.ListQuestions(ctx, q)
}

type failingReader struct{ err error }

func (r failingReader) ListQuestions(context.Context, domain.QuestionQuery) ([]domain.Question, error) {
	return nil, r.err
}

type blockingReader struct{}

func (blockingReader) ListQuestions(ctx context.Context, _ domain.QuestionQuery) ([]domain.Question, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFetcherDropsTemplatedRows(t *testing.T) {
	var seed []domain.Question
	for i := 0; i < 8; i++ {
		seed = append(seed, frenchQuestion(i, domain.DifficultyMedium))
	}
	seed = append(seed, placeholderQuestion(8, domain.DifficultyMedium), placeholderQuestion(9, domain.DifficultyMedium))
	fetcher := app.NewFetcher(memory.NewQuestionStore(seed...))

	got := fetcher.Fetch(context.Background(), domain.QuestionFilter{
		CountryID:       "france",
		Difficulty:      domain.DifficultyMedium,
		Limit:           10,
		ValidateContent: true,
	})
	if len(got) != 8 {
		t.Fatalf("expected 8 questions, got %d", len(got))
	}
	validator := quality.NewValidator(quality.ProfileLenient)
	for _, q := range got {
		texts := make([]string, 0, 4)
		for _, c := range q.Choices {
			texts = append(texts, c.Text)
		}
		if label, bad := validator.Match(q.Text, texts...); bad {
			t.Fatalf("question %s still matches %q", q.ID, label)
		}
	}
}

func TestFetcherKeepsTemplatedRowsWithoutValidation(t *testing.T) {
	store := memory.NewQuestionStore(frenchQuestion(1, domain.DifficultyEasy), placeholderQuestion(2, domain.DifficultyEasy))
	got := app.NewFetcher(store).Fetch(context.Background(), domain.QuestionFilter{CountryID: "france"})
	if len(got) != 2 {
		t.Fatalf("expected both rows, got %d", len(got))
	}
}

func TestFetcherRespectsLimitAndOverfetches(t *testing.T) {
	var seed []domain.Question
	for i := 0; i < 40; i++ {
		seed = append(seed, frenchQuestion(i, domain.DifficultyHard))
	}
	reader := &recordingReader{QuestionReader: memory.NewQuestionStore(seed...)}
	got := app.NewFetcher(reader).Fetch(context.Background(), domain.QuestionFilter{CountryID: "france", Limit: 10})

	if len(got) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(got))
	}
	if reader.queries[0].Limit != 30 {
		t.Fatalf("expected store limit 30, got %d", reader.queries[0].Limit)
	}
	if got[0].ID != "fr-39" {
		t.Fatalf("expected newest question first, got %s", got[0].ID)
	}
}

func TestFetcherRemovesTextDuplicates(t *testing.T) {
	a := frenchQuestion(1, domain.DifficultyEasy)
	b := frenchQuestion(2, domain.DifficultyEasy)
	b.Text = "  " + strings.ToUpper(a.Text) + " "
	got := app.NewFetcher(memory.NewQuestionStore(a, b)).Fetch(context.Background(), domain.QuestionFilter{CountryID: "france"})

	if len(got) != 1 {
		t.Fatalf("expected duplicates collapsed, got %d", len(got))
	}
	if got[0].ID != "fr-2" {
		t.Fatalf("expected first occurrence (newest) kept, got %s", got[0].ID)
	}
}

func TestFetcherDropsMalformedRows(t *testing.T) {
	bad := frenchQuestion(2, domain.DifficultyEasy)
	bad.CorrectAnswer = "Lorraine region"
	got := app.NewFetcher(memory.NewQuestionStore(frenchQuestion(1, domain.DifficultyEasy), bad)).
		Fetch(context.Background(), domain.QuestionFilter{CountryID: "france"})
	if len(got) != 1 || got[0].ID != "fr-1" {
		t.Fatalf("expected only the well-formed row, got %+v", got)
	}
	correct := 0
	for _, c := range got[0].Choices {
		if c.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		t.Fatalf("expected exactly one correct choice, got %d", correct)
	}
}

func TestFetcherFailsSoft(t *testing.T) {
	fetcher := app.NewFetcher(failingReader{err: errors.New("connection refused")})

	got := fetcher.Fetch(context.Background(), domain.QuestionFilter{CountryID: "france"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
	if _, err := fetcher.Query(context.Background(), domain.QuestionFilter{CountryID: "france"}); err == nil {
		t.Fatalf("expected Query to surface the error")
	}
}

func TestFetcherTimeout(t *testing.T) {
	fetcher := app.NewFetcher(blockingReader{}, app.WithFetchTimeout(20*time.Millisecond))
	_, err := fetcher.Query(context.Background(), domain.QuestionFilter{CountryID: "france"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
