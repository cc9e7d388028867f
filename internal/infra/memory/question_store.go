package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"globe-quiz-service/internal/domain"
)

// QuestionStore is an in-process question table, used for demos and tests.
type QuestionStore struct {
	mu    sync.RWMutex
	rows  []storedQuestion
	seq   int
	clock func() time.Time
}

type storedQuestion struct {
	question domain.Question
	seq      int
}

func NewQuestionStore(seed ...domain.Question) *QuestionStore {
	s := &QuestionStore{clock: time.Now}
	_, _ = s.InsertQuestions(context.Background(), seed)
	return s
}

// ListQuestions applies the query predicates and returns newest rows first.
func (s *QuestionStore) ListQuestions(_ context.Context, q domain.QuestionQuery) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]storedQuestion, 0, len(s.rows))
	for _, row := range s.rows {
		qq := row.question
		if q.CountryID != "" && qq.CountryID != q.CountryID {
			continue
		}
		if q.Difficulty != "" && qq.Difficulty != q.Difficulty {
			continue
		}
		if q.Category != "" && qq.Category != q.Category {
			continue
		}
		if q.ExcludeEasy && qq.Difficulty == domain.DifficultyEasy {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.question.CreatedAt.Equal(b.question.CreatedAt) {
			return a.question.CreatedAt.After(b.question.CreatedAt)
		}
		return a.seq > b.seq
	})
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]domain.Question, 0, len(matched))
	for _, row := range matched {
		out = append(out, row.question)
	}
	return out, nil
}

func (s *QuestionStore) ListByCountry(ctx context.Context, countryID string) ([]domain.Question, error) {
	return s.ListQuestions(ctx, domain.QuestionQuery{CountryID: countryID})
}

func (s *QuestionStore) DeleteByCountry(_ context.Context, countryID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	deleted := 0
	for _, row := range s.rows {
		if row.question.CountryID == countryID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	return deleted, nil
}

func (s *QuestionStore) InsertQuestions(_ context.Context, questions []domain.Question) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range questions {
		if q.CreatedAt.IsZero() {
			q.CreatedAt = s.clock()
		}
		s.seq++
		s.rows = append(s.rows, storedQuestion{question: q, seq: s.seq})
	}
	return len(questions), nil
}

func (s *QuestionStore) CountByDifficulty(_ context.Context, countryID string) (map[domain.Difficulty]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.Difficulty]int, len(domain.Difficulties))
	for _, row := range s.rows {
		if row.question.CountryID == countryID {
			counts[row.question.Difficulty]++
		}
	}
	return counts, nil
}

// Len reports the number of stored rows.
func (s *QuestionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// StaticCountryDirectory is a country lookup backed by an in-memory map.
type StaticCountryDirectory struct {
	countries map[string]domain.Country
}

func NewStaticCountryDirectory(countries ...domain.Country) *StaticCountryDirectory {
	d := &StaticCountryDirectory{countries: make(map[string]domain.Country, len(countries))}
	for _, c := range countries {
		d.countries[c.ID] = c
	}
	return d
}

// ListCountries returns every country ordered by name.
func (d *StaticCountryDirectory) ListCountries(context.Context) ([]domain.Country, error) {
	out := make([]domain.Country, 0, len(d.countries))
	for _, c := range d.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d *StaticCountryDirectory) GetCountry(_ context.Context, id string) (domain.Country, error) {
	if c, ok := d.countries[id]; ok {
		return c, nil
	}
	return domain.Country{}, domain.ErrCountryNotFound
}
