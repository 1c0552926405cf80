package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mind-engage/quizmint/internal/auth"
	"github.com/mind-engage/quizmint/internal/quiz"
)

// QuizService is the slice of quiz.Service the handlers need.
type QuizService interface {
	Generate(ctx context.Context, userID, topic, level string) (quiz.Generated, error)
	GenerateSingle(ctx context.Context, topic, level string) (quiz.Question, error)
	Submit(ctx context.Context, userID string, answers []int) (quiz.Result, error)
}

func GenerateQuizHandler(svc QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic string `json:"topic"`
			Level string `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Topic is required")
			return
		}
		if strings.TrimSpace(req.Topic) == "" {
			writeError(w, http.StatusBadRequest, "Topic is required")
			return
		}

		userID := auth.SubjectFromContext(r.Context())
		gen, err := svc.Generate(r.Context(), userID, req.Topic, req.Level)
		if err != nil {
			writeGenerateError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":   fmt.Sprintf("Quiz generated on topic: %s", req.Topic),
			"quizId":    gen.QuizID,
			"questions": gen.Questions,
		})
	}
}

// GenerateQuestionHandler is the anonymous single-question path. It binds
// to no user, persists nothing, and deliberately includes correctIndex in
// the response.
func GenerateQuestionHandler(svc QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic string `json:"topic"`
			Level string `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Topic is required")
			return
		}
		if strings.TrimSpace(req.Topic) == "" {
			writeError(w, http.StatusBadRequest, "Topic is required")
			return
		}

		q, err := svc.GenerateSingle(r.Context(), req.Topic, req.Level)
		if err != nil {
			writeQuestionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":  fmt.Sprintf("Question generated for topic: %s", req.Topic),
			"question": q,
		})
	}
}

func SubmitQuizHandler(svc QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers *[]int `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answers == nil {
			writeError(w, http.StatusBadRequest, "Answers array is required")
			return
		}

		userID := auth.SubjectFromContext(r.Context())
		res, err := svc.Submit(r.Context(), userID, *req.Answers)
		if err != nil {
			writeSubmitError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Quiz submitted successfully",
			"score":      res.Score,
			"total":      res.Total,
			"passed":     res.Passed,
			"coinsAdded": res.CoinsAdded,
			"results":    res.Results,
		})
	}
}
