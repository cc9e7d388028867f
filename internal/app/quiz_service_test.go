package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/infra/memory"
)

const quizID = "france:easy"

func TestJoinAndScoring(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	quiz, _, err := service.Join(ctx, quizID, "u1", "Alice")
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(quiz.Questions))
	}
	if _, _, err := service.Join(ctx, quizID, "u2", "Bob"); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	// fr-1 has its correct answer in slot b.
	result, board, err := service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "b"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Correct || result.Awarded != 1 || result.TotalScore != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board.Entries))
	}
	if board.Entries[0].UserID != "u2" || board.Entries[0].Score != 1 {
		t.Fatalf("expected Bob to lead with 1 point, got %+v", board.Entries[0])
	}
}

func TestOnlyFirstAnswerCounts(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)
	_, _, _ = service.Join(ctx, quizID, "u1", "Alice")

	wrong, _, err := service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "a"})
	if err != nil || wrong.Correct {
		t.Fatalf("expected wrong answer, got %+v %v", wrong, err)
	}
	retry, _, err := service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "b"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !retry.Correct || retry.Awarded != 0 || retry.TotalScore != 0 {
		t.Fatalf("retry should not score, got %+v", retry)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	if _, _, err := service.Join(ctx, quizID, "u1", "Alice"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	ch, cancel, err := service.Subscribe(ctx, quizID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	<-ch // initial snapshot

	if _, _, err := service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "fr-2", ChoiceID: "c"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	select {
	case update := <-ch:
		if len(update.Entries) != 1 || update.Entries[0].Score != 1 {
			t.Fatalf("expected updated score 1, got %+v", update.Entries)
		}
	case <-time.After(time.Second):
		t.Fatalf("no scoreboard update received")
	}
}

func TestSubmitErrors(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_, _, err := service.SubmitAnswer(ctx, "france:hard", "u1", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "a"})
	if err != domain.ErrSessionNotFound {
		t.Fatalf("expected session error, got %v", err)
	}

	_, _, _ = service.Join(ctx, quizID, "u1", "Alice")
	_, _, err = service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "b"})
	if err != domain.ErrParticipantNotFound {
		t.Fatalf("expected participant error, got %v", err)
	}
	_, _, err = service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "missing", ChoiceID: "b"})
	if err != domain.ErrQuestionNotFound {
		t.Fatalf("expected question error, got %v", err)
	}
	_, _, err = service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "z"})
	if err != domain.ErrChoiceNotFound {
		t.Fatalf("expected choice error, got %v", err)
	}
}

func TestJoinUnknownQuiz(t *testing.T) {
	service := newTestService(t)
	if _, _, err := service.Join(context.Background(), "atlantis:easy", "u1", "Alice"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
	if _, _, err := service.Join(context.Background(), "no-separator", "u1", "Alice"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected malformed id rejected, got %v", err)
	}
}

func TestScoreboardTieBreaksOnTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { now = now.Add(time.Second); return now }
	service := newTestServiceWithSessions(t, memory.NewSessionStoreWithClock(clock))
	ctx := context.Background()

	_, _, _ = service.Join(ctx, quizID, "u1", "Zoe")
	_, _, _ = service.Join(ctx, quizID, "u2", "Adam")
	_, _, _ = service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "b"})
	_, board, _ := service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "b"})

	if board.Entries[0].UserID != "u1" {
		t.Fatalf("expected earlier scorer first, got %+v", board.Entries)
	}
}

func TestLeaveRemovesSession(t *testing.T) {
	sessions := memory.NewSessionStore()
	service := newTestServiceWithSessions(t, sessions)
	ctx := context.Background()

	_, _, _ = service.Join(ctx, quizID, "u1", "Alice")
	service.Leave(ctx, quizID, "u1")
	if _, ok := sessions.Get(quizID); ok {
		t.Fatalf("expected session dropped")
	}
}

func newTestService(t *testing.T) *app.QuizService {
	return newTestServiceWithSessions(t, memory.NewSessionStore())
}

func newTestServiceWithSessions(t *testing.T, sessions app.SessionRepository) *app.QuizService {
	t.Helper()
	store := memory.NewQuestionStore(
		frenchQuestion(1, domain.DifficultyEasy),
		frenchQuestion(2, domain.DifficultyEasy),
		frenchQuestion(3, domain.DifficultyEasy),
	)
	cache, err := memory.NewQuestionCache(app.NewFetcher(store), 5*time.Minute, 16)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return app.NewQuizService(sessions, app.NewQuizCatalog(cache, 10))
}

func TestSessionKeepsQuestionSetAfterCacheRefresh(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuestionStore(
		frenchQuestion(1, domain.DifficultyEasy),
		frenchQuestion(2, domain.DifficultyEasy),
		frenchQuestion(3, domain.DifficultyEasy),
	)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache, err := memory.NewQuestionCache(app.NewFetcher(store), 5*time.Minute, 16,
		memory.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	service := app.NewQuizService(memory.NewSessionStore(), app.NewQuizCatalog(cache, 3))

	if _, _, err := service.Join(ctx, quizID, "u1", "Alice"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	newer := []domain.Question{
		frenchQuestion(10, domain.DifficultyEasy),
		frenchQuestion(11, domain.DifficultyEasy),
		frenchQuestion(12, domain.DifficultyEasy),
	}
	if _, err := store.InsertQuestions(ctx, newer); err != nil {
		t.Fatalf("insert: %v", err)
	}
	now = now.Add(6 * time.Minute)

	result, _, err := service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{QuestionID: "fr-1", ChoiceID: "b"})
	if err != nil || !result.Correct {
		t.Fatalf("expected the shown question to still score, got %+v %v", result, err)
	}
	quiz, _, err := service.Join(ctx, quizID, "u2", "Bob")
	if err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	for _, q := range quiz.Questions {
		if q.ID == "fr-10" || q.ID == "fr-11" || q.ID == "fr-12" {
			t.Fatalf("late joiner should see the session's set, got %s", q.ID)
		}
	}
}
