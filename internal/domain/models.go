package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the coarse level a question is tagged with.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every known level in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts a case-insensitive label.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, raw)
}

// Question is the persisted form of a multiple choice question.
type Question struct {
	ID            string     `json:"id" yaml:"id"`
	Text          string     `json:"text" yaml:"text"`
	OptionA       string     `json:"option_a" yaml:"option_a"`
	OptionB       string     `json:"option_b" yaml:"option_b"`
	OptionC       string     `json:"option_c" yaml:"option_c"`
	OptionD       string     `json:"option_d" yaml:"option_d"`
	CorrectAnswer string     `json:"correct_answer" yaml:"correct_answer"`
	Explanation   string     `json:"explanation,omitempty" yaml:"explanation"`
	Category      string     `json:"category" yaml:"category"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
	CountryID     string     `json:"country_id,omitempty" yaml:"country_id"` // empty when unassigned
	ImageURL      string     `json:"image_url,omitempty" yaml:"image_url"`
	AIGenerated   bool       `json:"ai_generated" yaml:"ai_generated"`
	MonthRotation string     `json:"month_rotation,omitempty" yaml:"month_rotation"`
	CreatedAt     time.Time  `json:"created_at,omitempty" yaml:"created_at"`
}

// Options returns the four answer options in A-D order.
func (q Question) Options() [4]string {
	return [4]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// Country is a row of the country reference table questions point at.
type Country struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Capital    string     `json:"capital" yaml:"capital"`
	Continent  string     `json:"continent" yaml:"continent"`
	Population int64      `json:"population" yaml:"population"`
	Area       float64    `json:"area" yaml:"area"`
	Latitude   float64    `json:"latitude" yaml:"latitude"`
	Longitude  float64    `json:"longitude" yaml:"longitude"`
	FlagURL    string     `json:"flagUrl" yaml:"flag_url"`
	Categories []string   `json:"categories" yaml:"categories"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// QuestionFilter narrows a fetch. Zero values mean "no predicate".
type QuestionFilter struct {
	CountryID       string
	Difficulty      Difficulty
	Category        string
	Limit           int
	ExcludeEasy     bool
	ValidateContent bool
}

// QuestionQuery is what the fetcher asks a store for.
type QuestionQuery struct {
	CountryID   string
	Difficulty  Difficulty
	Category    string
	ExcludeEasy bool
	Limit       int // 0 means unbounded
}

// UpsertOptions controls a batch admission.
type UpsertOptions struct {
	ReplaceForCountry bool   `json:"replaceForCountry"`
	CountryID         string `json:"countryId"`
}

// Skip reasons reported by batch admission.
const (
	SkipValidationFailed = "validation_failed"
	SkipDuplicate        = "duplicate"
)

// SkippedQuestion explains why an incoming question was not inserted.
type SkippedQuestion struct {
	Index  int      `json:"index"`
	ID     string   `json:"id,omitempty"`
	Text   string   `json:"text"`
	Reason string   `json:"reason"`
	Issues []string `json:"issues,omitempty"`
}

// UpsertResult summarizes one batch admission.
type UpsertResult struct {
	Inserted       int               `json:"inserted"`
	Skipped        int               `json:"skipped"`
	Deleted        int               `json:"deleted"`
	SkippedDetails []SkippedQuestion `json:"skippedDetails"`
	DeleteError    string            `json:"deleteError,omitempty"`
}

// AddSkipped records a skipped question and bumps the counter.
func (r *UpsertResult) AddSkipped(s SkippedQuestion) {
	r.SkippedDetails = append(r.SkippedDetails, s)
	r.Skipped++
}

// DifficultyCoverage reports how many questions a country has at one level.
type DifficultyCoverage struct {
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
	Ready      bool       `json:"ready"`
}

// CoverageReport is the per-difficulty readiness of a country's question set.
type CoverageReport struct {
	CountryID string               `json:"countryId"`
	Minimum   int                  `json:"minimum"`
	Levels    []DifficultyCoverage `json:"levels"`
}

// Participant represents a quiz player and their accumulated score.
type Participant struct {
	UserID      string
	DisplayName string
	Score       int
	Answered    map[string]bool
	LastUpdated time.Time
}

// ScoreboardEntry is a snapshot-friendly view of a participant.
type ScoreboardEntry struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
}

// Scoreboard captures the ordered standings for a quiz session.
type Scoreboard struct {
	QuizID    string            `json:"quizId"`
	Entries   []ScoreboardEntry `json:"entries"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// AnswerSubmission is a player's pick for one question.
type AnswerSubmission struct {
	QuestionID string
	ChoiceID   string
}

// AnswerResult summarizes the outcome of a submission for a single player.
type AnswerResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
	TotalScore int    `json:"totalScore"`
}

// Quiz is a playable set of presentation questions for one country and difficulty.
type Quiz struct {
	ID         string                 `json:"id"`
	CountryID  string                 `json:"countryId"`
	Difficulty Difficulty             `json:"difficulty"`
	Questions  []PresentationQuestion `json:"questions"`
}
