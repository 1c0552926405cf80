package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mind-engage/quizmint/internal/genai"
	"github.com/mind-engage/quizmint/internal/quiz"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeGenerateError maps batch-generation failures. Every generator
// failure is a 500; the body distinguishes format, parse and transport
// problems.
func writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, genai.ErrFormat):
		writeError(w, http.StatusInternalServerError, "AI response format unexpected or missing JSON block.")
	case errors.Is(err, genai.ErrPayload):
		writeError(w, http.StatusInternalServerError, "Failed to parse quiz data from AI.")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to fetch quiz from AI")
	}
}

func writeQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, genai.ErrFormat):
		writeError(w, http.StatusInternalServerError, "AI response missing JSON block.")
	case errors.Is(err, genai.ErrPayload):
		writeError(w, http.StatusInternalServerError, "Invalid JSON returned by AI.")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to fetch question from AI")
	}
}

func writeSubmitError(w http.ResponseWriter, err error) {
	if errors.Is(err, quiz.ErrNoActiveQuiz) {
		writeError(w, http.StatusNotFound, "No quiz found for this user or it has expired.")
		return
	}
	writeError(w, http.StatusInternalServerError, "Quiz submission failed")
}
