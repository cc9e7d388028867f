package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/logger"
)

// SessionStore keeps sessions in process and advertises which quizzes are
// live on this instance with an expiring key per session:
//
//	SET quiz:session:{quizID} <unix start> EX ttl
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration, log *zap.Logger) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		log:      logger.OrNop(log),
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(quizID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[quizID]; ok {
		return session
	}
	session := app.NewSession(quizID)
	s.sessions[quizID] = session
	started := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.Set(context.Background(), SessionKey(quizID), started, s.ttl).Err(); err != nil {
		s.log.Warn("session marker write failed", zap.String("quiz_id", quizID), zap.Error(err))
	}
	return session
}

func (s *SessionStore) Get(quizID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[quizID]
	return session, ok
}

func (s *SessionStore) DeleteIfEmpty(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[quizID]
	if !ok || !session.IsEmpty() {
		return
	}
	delete(s.sessions, quizID)
	if err := s.client.Del(context.Background(), SessionKey(quizID)).Err(); err != nil {
		s.log.Warn("session marker delete failed", zap.String("quiz_id", quizID), zap.Error(err))
	}
}

// SessionKey is the liveness key for a quiz session.
func SessionKey(quizID string) string {
	return "quiz:session:" + quizID
}
