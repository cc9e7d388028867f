package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been initialized.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrParticipantNotFound is returned when a player tries to answer before joining.
	ErrParticipantNotFound = errors.New("participant not found in quiz")
	// ErrQuizNotFound indicates no playable question set exists for a quiz id.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrChoiceNotFound indicates a submitted choice ID is invalid.
	ErrChoiceNotFound = errors.New("choice not found")
	// ErrCorrectAnswerMismatch marks a question whose correct answer is not exactly one of its options.
	ErrCorrectAnswerMismatch = errors.New("correct answer does not match exactly one option")
	// ErrInvalidDifficulty is returned when parsing an unknown difficulty label.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrCountryNotFound is returned by country lookups.
	ErrCountryNotFound = errors.New("country not found")
)
