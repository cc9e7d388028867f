package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/domain"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute, nil)

	_ = store.GetOrCreate("france:easy")
	if !mr.Exists(SessionKey("france:easy")) {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL(SessionKey("france:easy")); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	store.DeleteIfEmpty("france:easy")
	if mr.Exists(SessionKey("france:easy")) {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionStoreWithQuizService(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute, nil)
	service := app.NewQuizService(store, stubQuizzes{})
	ctx := context.Background()

	if _, _, err := service.Join(ctx, "france:easy", "u1", "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	store.DeleteIfEmpty("france:easy")
	if !mr.Exists(SessionKey("france:easy")) {
		t.Fatalf("occupied session must keep its key")
	}

	service.Leave(ctx, "france:easy", "u1")
	if mr.Exists(SessionKey("france:easy")) {
		t.Fatalf("expected key removed after last player left")
	}
}

type stubQuizzes struct{}

func (stubQuizzes) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	return domain.Quiz{ID: quizID, Questions: []domain.PresentationQuestion{sampleQuestion("france")}}, nil
}
