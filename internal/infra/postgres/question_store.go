package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"globe-quiz-service/internal/domain"
)

// questionRow maps the questions table.
type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID            string    `bun:"id,pk"`
	Text          string    `bun:"question_text,notnull"`
	OptionA       string    `bun:"option_a,notnull"`
	OptionB       string    `bun:"option_b,notnull"`
	OptionC       string    `bun:"option_c,notnull"`
	OptionD       string    `bun:"option_d,notnull"`
	CorrectAnswer string    `bun:"correct_answer,notnull"`
	Explanation   string    `bun:"explanation"`
	Category      string    `bun:"category"`
	Difficulty    string    `bun:"difficulty,notnull"`
	CountryID     string    `bun:"country_id,nullzero"`
	ImageURL      string    `bun:"image_url"`
	AIGenerated   bool      `bun:"ai_generated"`
	MonthRotation string    `bun:"month_rotation"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func toRow(q domain.Question) questionRow {
	return questionRow{
		ID:            q.ID,
		Text:          q.Text,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Category:      q.Category,
		Difficulty:    string(q.Difficulty),
		CountryID:     q.CountryID,
		ImageURL:      q.ImageURL,
		AIGenerated:   q.AIGenerated,
		MonthRotation: q.MonthRotation,
		CreatedAt:     q.CreatedAt,
	}
}

func (r questionRow) question() domain.Question {
	return domain.Question{
		ID:            r.ID,
		Text:          r.Text,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
		Category:      r.Category,
		Difficulty:    domain.Difficulty(r.Difficulty),
		CountryID:     r.CountryID,
		ImageURL:      r.ImageURL,
		AIGenerated:   r.AIGenerated,
		MonthRotation: r.MonthRotation,
		CreatedAt:     r.CreatedAt,
	}
}

// QuestionStore reads and writes the questions table through bun.
type QuestionStore struct {
	db *bun.DB
}

func NewQuestionStore(db *bun.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

func (s *QuestionStore) ListQuestions(ctx context.Context, q domain.QuestionQuery) ([]domain.Question, error) {
	var rows []questionRow
	sel := s.db.NewSelect().Model(&rows)
	if q.CountryID != "" {
		sel = sel.Where("q.country_id = ?", q.CountryID)
	}
	if q.Difficulty != "" {
		sel = sel.Where("q.difficulty = ?", string(q.Difficulty))
	}
	if q.Category != "" {
		sel = sel.Where("q.category = ?", q.Category)
	}
	if q.ExcludeEasy {
		sel = sel.Where("q.difficulty <> ?", string(domain.DifficultyEasy))
	}
	sel = sel.Order("q.created_at DESC")
	if q.Limit > 0 {
		sel = sel.Limit(q.Limit)
	}
	if err := sel.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	return toDomain(rows), nil
}

func (s *QuestionStore) ListByCountry(ctx context.Context, countryID string) ([]domain.Question, error) {
	var rows []questionRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("q.country_id = ?", countryID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select questions for %s: %w", countryID, err)
	}
	return toDomain(rows), nil
}

func (s *QuestionStore) DeleteByCountry(ctx context.Context, countryID string) (int, error) {
	res, err := s.db.NewDelete().
		Model((*questionRow)(nil)).
		Where("country_id = ?", countryID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete questions for %s: %w", countryID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// InsertQuestions writes the batch in one statement.
func (s *QuestionStore) InsertQuestions(ctx context.Context, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, toRow(q))
	}
	res, err := s.db.NewInsert().Model(&rows).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert questions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(n), nil
}

func toDomain(rows []questionRow) []domain.Question {
	out := make([]domain.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.question())
	}
	return out
}
