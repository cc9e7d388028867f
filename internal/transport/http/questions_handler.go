package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"globe-quiz-service/internal/app"
	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/logger"
	"globe-quiz-service/internal/quality"
)

const defaultFetchLimit = 10

// QuestionsHandler exposes fetch, admission and coverage over REST.
type QuestionsHandler struct {
	fetcher   *app.Fetcher
	cache     app.QuestionCache
	admission *app.Admission
	coverage  *app.Coverage
	log       *zap.Logger
}

func NewQuestionsHandler(fetcher *app.Fetcher, cache app.QuestionCache, admission *app.Admission, coverage *app.Coverage, log *zap.Logger) *QuestionsHandler {
	return &QuestionsHandler{fetcher: fetcher, cache: cache, admission: admission, coverage: coverage, log: logger.OrNop(log)}
}

func (h *QuestionsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/questions", h.ListQuestions).Methods(http.MethodGet)
	router.HandleFunc("/api/questions/batch", h.UpsertBatch).Methods(http.MethodPost)
	router.HandleFunc("/api/questions/precheck", h.PreCheck).Methods(http.MethodPost)
	router.HandleFunc("/api/countries/{id}/questions", h.CountryQuestions).Methods(http.MethodGet)
	router.HandleFunc("/api/countries/{id}/coverage", h.Coverage).Methods(http.MethodGet)
}

func (h *QuestionsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.QuestionFilter{
		CountryID:       q.Get("country"),
		Category:        q.Get("category"),
		ExcludeEasy:     q.Get("excludeEasy") == "true",
		ValidateContent: q.Get("validate") == "true",
	}
	if raw := q.Get("difficulty"); raw != "" {
		d, err := domain.ParseDifficulty(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Difficulty = d
	}
	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	filter.Limit = limit

	writeJSON(w, http.StatusOK, h.fetcher.Fetch(r.Context(), filter))
}

func (h *QuestionsHandler) CountryQuestions(w http.ResponseWriter, r *http.Request) {
	countryID := mux.Vars(r)["id"]
	difficulty, err := domain.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	writeJSON(w, http.StatusOK, h.cache.GetOrFetch(r.Context(), countryID, difficulty, limit))
}

func (h *QuestionsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	report, err := h.coverage.Report(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.log.Error("coverage report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute coverage")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type batchRequest struct {
	Questions         []domain.Question `json:"questions"`
	ReplaceForCountry bool              `json:"replaceForCountry"`
	CountryID         string            `json:"countryId"`
}

type batchDetails struct {
	Skipped []domain.SkippedQuestion `json:"skipped"`
}

type batchResponse struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	Inserted    int          `json:"inserted"`
	Skipped     int          `json:"skipped"`
	Deleted     int          `json:"deleted"`
	DeleteError string       `json:"deleteError,omitempty"`
	Details     batchDetails `json:"details"`
}

func (h *QuestionsHandler) UpsertBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	result, err := h.admission.Upsert(r.Context(), req.Questions, domain.UpsertOptions{
		ReplaceForCountry: req.ReplaceForCountry,
		CountryID:         req.CountryID,
	})
	resp := batchResponse{
		Success:     err == nil,
		Inserted:    result.Inserted,
		Skipped:     result.Skipped,
		Deleted:     result.Deleted,
		DeleteError: result.DeleteError,
		Details:     batchDetails{Skipped: result.SkippedDetails},
	}
	if err != nil {
		h.log.Error("batch upsert failed",
			zap.Int("questions", len(req.Questions)),
			zap.Int("deleted", result.Deleted),
			zap.Error(err))
		resp.Error = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *QuestionsHandler) PreCheck(w http.ResponseWriter, r *http.Request) {
	var candidate quality.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	writeJSON(w, http.StatusOK, h.admission.Check(r.Context(), candidate))
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultFetchLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
