package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/quizmint/internal/logger"
)

// Generator produces question records for a topic and difficulty.
// Satisfied by genai.Client.
type Generator interface {
	GenerateQuiz(ctx context.Context, topic, level string) ([]Question, error)
	GenerateQuestion(ctx context.Context, topic, level string) (Question, error)
}

// Ledger credits coins to a user. Satisfied by user.Store.
type Ledger interface {
	AddCoins(ctx context.Context, userID string, amount int64) error
}

// Generated is the client-facing view of a freshly generated quiz.
type Generated struct {
	QuizID    string           `json:"quizId"`
	Questions []PublicQuestion `json:"questions"`
}

// Service drives the per-user quiz lifecycle:
// NoQuiz -> Active -> (Submitted | Expired) -> NoQuiz.
// No lock is held across the generator call; both state transitions are
// single atomic store operations.
type Service struct {
	store  Store
	gen    Generator
	ledger Ledger
	log    *logger.Logger
}

func NewService(store Store, gen Generator, ledger Ledger, log *logger.Logger) *Service {
	return &Service{store: store, gen: gen, ledger: ledger, log: log.With("service", "quiz")}
}

const defaultLevel = "intermediate"

// Generate builds a new quiz for the user, replacing any previous one.
// The answer keys never leave the server.
func (s *Service) Generate(ctx context.Context, userID, topic, level string) (Generated, error) {
	if level == "" {
		level = defaultLevel
	}
	questions, err := s.gen.GenerateQuiz(ctx, topic, level)
	if err != nil {
		return Generated{}, err
	}

	q := Quiz{
		ID:        uuid.NewString(),
		UserID:    userID,
		Questions: questions,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.Replace(ctx, q); err != nil {
		return Generated{}, fmt.Errorf("store quiz: %w", err)
	}
	s.log.Info("quiz generated", "user", userID, "topic", topic, "questions", len(questions))

	pub := make([]PublicQuestion, len(questions))
	for i, qq := range questions {
		pub[i] = qq.Public()
	}
	return Generated{QuizID: q.ID, Questions: pub}, nil
}

// GenerateSingle serves the anonymous one-question path. Nothing is
// persisted and the answer index is returned to the caller.
func (s *Service) GenerateSingle(ctx context.Context, topic, level string) (Question, error) {
	if level == "" {
		level = defaultLevel
	}
	return s.gen.GenerateQuestion(ctx, topic, level)
}

// Submit scores answers against the user's active quiz. The quiz is
// destroyed whether or not the score passes; only defined answer
// positions are scored and surplus entries are ignored. A pass awards
// score coins through the ledger.
func (s *Service) Submit(ctx context.Context, userID string, answers []int) (Result, error) {
	q, err := s.store.Take(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	score := 0
	results := make([]QuestionResult, len(q.Questions))
	for i, qq := range q.Questions {
		r := QuestionResult{Question: qq.Question, CorrectIndex: qq.CorrectIndex}
		if i < len(answers) {
			a := answers[i]
			r.UserAnswer = &a
			r.IsCorrect = a == qq.CorrectIndex
		}
		if r.IsCorrect {
			score++
		}
		results[i] = r
	}

	total := len(q.Questions)
	passed := score >= (total+1)/2
	res := Result{Score: score, Total: total, Passed: passed, Results: results}
	if passed {
		if err := s.ledger.AddCoins(ctx, userID, int64(score)); err != nil {
			return Result{}, fmt.Errorf("award coins: %w", err)
		}
		res.CoinsAdded = int64(score)
	}
	s.log.Info("quiz submitted", "user", userID, "score", score, "total", total, "passed", passed)
	return res, nil
}
