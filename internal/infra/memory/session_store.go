package memory

import (
	"sync"
	"time"

	"globe-quiz-service/internal/app"
)

// SessionStore keeps live quiz sessions in process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
	clock    func() time.Time
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock creates sessions whose scoreboards are stamped by clock.
func NewSessionStoreWithClock(clock func() time.Time) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
		clock:    clock,
	}
}

func (s *SessionStore) GetOrCreate(quizID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[quizID]; ok {
		return session
	}
	session := app.NewSessionWithClock(quizID, s.clock)
	s.sessions[quizID] = session
	return session
}

func (s *SessionStore) Get(quizID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[quizID]
	return session, ok
}

// DeleteIfEmpty drops the session only when no player is left in it.
func (s *SessionStore) DeleteIfEmpty(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[quizID]; ok && session.IsEmpty() {
		delete(s.sessions, quizID)
	}
}

// Active reports how many sessions are live.
func (s *SessionStore) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
