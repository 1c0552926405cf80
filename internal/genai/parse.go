package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mind-engage/quizmint/internal/quiz"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// extractFenced pulls the substring between the first ```json marker and
// the last ``` marker.
func extractFenced(raw string) (string, error) {
	start := strings.Index(raw, fenceOpen)
	end := strings.LastIndex(raw, fenceClose)
	if start == -1 || end == -1 || end <= start {
		return "", ErrFormat
	}
	return strings.TrimSpace(raw[start+len(fenceOpen) : end]), nil
}

// payload is the wire shape the prompt demands. CorrectIndex is a pointer
// so an absent field is distinguishable from index 0.
type payload struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
}

func (p payload) toQuestion() (quiz.Question, error) {
	if p.CorrectIndex == nil {
		return quiz.Question{}, fmt.Errorf("%w: missing correctIndex", ErrPayload)
	}
	q := quiz.Question{Question: p.Question, Options: p.Options, CorrectIndex: *p.CorrectIndex}
	if err := q.Validate(); err != nil {
		return quiz.Question{}, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return q, nil
}

func parseQuizPayload(jsonStr string) ([]quiz.Question, error) {
	var ps []payload
	if err := json.Unmarshal([]byte(jsonStr), &ps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: empty question array", ErrPayload)
	}
	out := make([]quiz.Question, 0, len(ps))
	for _, p := range ps {
		q, err := p.toQuestion()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func parseQuestionPayload(jsonStr string) (quiz.Question, error) {
	var p payload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return quiz.Question{}, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return p.toQuestion()
}
