package quiz

import (
	"errors"
	"fmt"
)

// Question carries the answer key. Clients only ever see it through
// PublicQuestion, except on the anonymous single-question endpoint and in
// per-question submit results.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Validate fails closed on any shape the generator should never produce.
func (q Question) Validate() error {
	if q.Question == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question needs at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correctIndex %d out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	return nil
}

// PublicQuestion is the answer-stripped view served on batch generation.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{Question: q.Question, Options: q.Options}
}

// Quiz is the per-user active quiz. At most one exists per user; the
// store guarantees it becomes unreadable once older than the TTL.
type Quiz struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"createdAt"`
}

// QuestionResult is one row of the submit response.
type QuestionResult struct {
	Question     string `json:"question"`
	CorrectIndex int    `json:"correctIndex"`
	UserAnswer   *int   `json:"userAnswer"`
	IsCorrect    bool   `json:"isCorrect"`
}

// Result is derived at submit time and never persisted.
type Result struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Passed     bool             `json:"passed"`
	CoinsAdded int64            `json:"coinsAdded"`
	Results    []QuestionResult `json:"results"`
}

var ErrNoActiveQuiz = errors.New("no active quiz")
