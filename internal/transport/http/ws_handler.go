package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/logger"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     logger.OrNop(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	ChoiceID   string `json:"choiceId"`
}

type joinedPayload struct {
	Quiz       playQuiz          `json:"quiz"`
	Scoreboard domain.Scoreboard `json:"scoreboard"`
}

// playQuiz is the question set as players see it: no correct flags and no
// explanations, since answers are scored server side.
type playQuiz struct {
	ID         string            `json:"id"`
	CountryID  string            `json:"countryId"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Questions  []playQuestion    `json:"questions"`
}

type playQuestion struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Choices    [4]playChoice     `json:"choices"`
	Category   string            `json:"category"`
	Difficulty domain.Difficulty `json:"difficulty"`
	ImageURL   string            `json:"imageUrl,omitempty"`
}

type playChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newPlayQuiz(quiz domain.Quiz) playQuiz {
	out := playQuiz{
		ID:         quiz.ID,
		CountryID:  quiz.CountryID,
		Difficulty: quiz.Difficulty,
		Questions:  make([]playQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		pq := playQuestion{ID: q.ID, Text: q.Text, Category: q.Category, Difficulty: q.Difficulty, ImageURL: q.ImageURL}
		for i, c := range q.Choices {
			pq.Choices[i] = playChoice{ID: c.ID, Text: c.Text}
		}
		out.Questions = append(out.Questions, pq)
	}
	return out
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(err error) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
}

// ServeWS upgrades to a websocket and plays one quiz for one player.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if quizID == "" || userID == "" || displayName == "" {
		http.Error(w, "missing quizId, userId, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	quiz, board, err := h.service.Join(r.Context(), quizID, userID, displayName)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	defer h.service.Leave(r.Context(), quizID, userID)

	updates, cancel, err := h.service.Subscribe(r.Context(), quizID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	defer cancel()

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer; gorilla connections do not allow concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write failed", zap.String("quiz_id", quizID), zap.Error(err))
				return
			}
		}
	}()

	send <- outboundMessage{Type: "joined", Payload: joinedPayload{Quiz: newPlayQuiz(quiz), Scoreboard: board}}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage{Type: "scoreboard", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			result, _, err := h.service.SubmitAnswer(r.Context(), quizID, userID, domain.AnswerSubmission{
				QuestionID: payload.QuestionID,
				ChoiceID:   payload.ChoiceID,
			})
			if err != nil {
				send <- errorMessage(err)
				continue
			}
			send <- outboundMessage{Type: "answerResult", Payload: result}
		default:
			send <- outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
