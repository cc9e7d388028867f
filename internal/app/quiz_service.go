package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"globe-quiz-service/internal/domain"
)

// SessionRepository abstracts where live quiz sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(quizID string) *Session
	Get(quizID string) (*Session, bool)
	DeleteIfEmpty(quizID string)
}

// QuizRepository loads playable quiz content.
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizService runs live quiz sessions over cached question sets.
type QuizService struct {
	sessions SessionRepository
	quizzes  QuizRepository
}

func NewQuizService(sessions SessionRepository, quizzes QuizRepository) *QuizService {
	return &QuizService{sessions: sessions, quizzes: quizzes}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return newSession(id, time.Now)
}

// NewSessionWithClock is used by tests that need deterministic timestamps.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return newSession(id, now)
}

// Join registers the player, returning the session's question set and the
// current standings. The first join of a session pins the question set;
// later joins and every answer use that same set.
func (s *QuizService) Join(ctx context.Context, quizID, userID, displayName string) (domain.Quiz, domain.Scoreboard, error) {
	if session, ok := s.sessions.Get(quizID); ok {
		if quiz, pinned := session.Quiz(); pinned {
			return quiz, session.join(userID, displayName), nil
		}
	}
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, domain.Scoreboard{}, err
	}
	session := s.sessions.GetOrCreate(quizID)
	quiz = session.pin(quiz)
	return quiz, session.join(userID, displayName), nil
}

// SubmitAnswer scores one pick. A question only counts the first time a
// player answers it.
func (s *QuizService) SubmitAnswer(ctx context.Context, quizID, userID string, submission domain.AnswerSubmission) (domain.AnswerResult, domain.Scoreboard, error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return domain.AnswerResult{}, domain.Scoreboard{}, domain.ErrSessionNotFound
	}
	quiz, pinned := session.Quiz()
	if !pinned {
		loaded, err := s.quizzes.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.AnswerResult{}, domain.Scoreboard{}, err
		}
		quiz = session.pin(loaded)
	}
	correct, err := scoreSubmission(quiz, submission)
	if err != nil {
		return domain.AnswerResult{}, domain.Scoreboard{}, err
	}
	return session.record(userID, submission.QuestionID, correct)
}

// Subscribe streams scoreboard updates. The caller must invoke cancel.
func (s *QuizService) Subscribe(_ context.Context, quizID string) (<-chan domain.Scoreboard, func(), error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Leave removes a player and drops the session once nobody is left.
func (s *QuizService) Leave(_ context.Context, quizID, userID string) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return
	}
	session.leave(userID)
	if session.IsEmpty() {
		s.sessions.DeleteIfEmpty(quizID)
	}
}

// Session is the in-process state of one live quiz.
type Session struct {
	id  string
	now func() time.Time

	mu          sync.RWMutex
	quiz        *domain.Quiz
	players     map[string]*domain.Participant
	subscribers map[chan domain.Scoreboard]struct{}
}

func newSession(id string, now func() time.Time) *Session {
	return &Session{
		id:          id,
		now:         now,
		players:     make(map[string]*domain.Participant),
		subscribers: make(map[chan domain.Scoreboard]struct{}),
	}
}

// Quiz returns the question set the session is played with, if pinned yet.
func (s *Session) Quiz() (domain.Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.quiz == nil {
		return domain.Quiz{}, false
	}
	return *s.quiz, true
}

// pin keeps the first question set handed to the session and returns it.
func (s *Session) pin(quiz domain.Quiz) domain.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quiz == nil {
		s.quiz = &quiz
	}
	return *s.quiz
}

func (s *Session) join(userID, displayName string) domain.Scoreboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[userID]; ok {
		p.DisplayName = displayName
		p.LastUpdated = s.now()
	} else {
		s.players[userID] = &domain.Participant{
			UserID:      userID,
			DisplayName: displayName,
			Answered:    make(map[string]bool),
			LastUpdated: s.now(),
		}
	}
	return s.publishLocked()
}

func (s *Session) record(userID, questionID string, correct bool) (domain.AnswerResult, domain.Scoreboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[userID]
	if !ok {
		return domain.AnswerResult{}, domain.Scoreboard{}, domain.ErrParticipantNotFound
	}
	result := domain.AnswerResult{QuestionID: questionID, Correct: correct}
	if !p.Answered[questionID] {
		p.Answered[questionID] = true
		if correct {
			p.Score++
			result.Awarded = 1
		}
		p.LastUpdated = s.now()
	}
	result.TotalScore = p.Score
	return result, s.publishLocked(), nil
}

func (s *Session) leave(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, userID)
	s.publishLocked()
}

// IsEmpty reports whether the session has no players.
func (s *Session) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players) == 0
}

func (s *Session) subscribe() (<-chan domain.Scoreboard, func()) {
	ch := make(chan domain.Scoreboard, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// publishLocked pushes the latest standings; a full subscriber loses its
// oldest pending update rather than blocking the session.
func (s *Session) publishLocked() domain.Scoreboard {
	board := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- board:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- board
		}
	}
	return board
}

// snapshotLocked orders by score, then by who got there first, then by name.
func (s *Session) snapshotLocked() domain.Scoreboard {
	players := make([]*domain.Participant, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.LastUpdated.Equal(b.LastUpdated) {
			return a.LastUpdated.Before(b.LastUpdated)
		}
		return a.DisplayName < b.DisplayName
	})

	entries := make([]domain.ScoreboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, domain.ScoreboardEntry{UserID: p.UserID, DisplayName: p.DisplayName, Score: p.Score})
	}
	return domain.Scoreboard{QuizID: s.id, Entries: entries, UpdatedAt: s.now()}
}

// scoreSubmission checks the picked choice against the quiz content.
func scoreSubmission(quiz domain.Quiz, submission domain.AnswerSubmission) (bool, error) {
	for _, q := range quiz.Questions {
		if q.ID != submission.QuestionID {
			continue
		}
		for _, c := range q.Choices {
			if c.ID == submission.ChoiceID {
				return c.IsCorrect, nil
			}
		}
		return false, domain.ErrChoiceNotFound
	}
	return false, domain.ErrQuestionNotFound
}
