package quiz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mind-engage/quizmint/internal/db"
	"github.com/mind-engage/quizmint/internal/logger"
	"github.com/mind-engage/quizmint/internal/quiz"
)

func openTestStore(t *testing.T, ttl time.Duration) *quiz.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	// quizzes.user_id references users; seed the owner
	_, err = dbh.Exec(`INSERT INTO users (id,name,email,password_hash,coins,created_at) VALUES ('u1','Test','t@example.com','x',0,0)`)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return quiz.NewSQLStore(dbh, ttl, logger.NewNop())
}

func sampleQuiz(createdAt int64) quiz.Quiz {
	return quiz.Quiz{
		ID:     "q-1",
		UserID: "u1",
		Questions: []quiz.Question{
			{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
			{Question: "Q2", Options: []string{"a", "b"}, CorrectIndex: 0},
		},
		CreatedAt: createdAt,
	}
}

func TestSQLStoreReplaceAndTake(t *testing.T) {
	store := openTestStore(t, 10*time.Minute)
	ctx := context.Background()

	if err := store.Replace(ctx, sampleQuiz(time.Now().Unix())); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := store.Take(ctx, "u1")
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.ID != "q-1" || len(got.Questions) != 2 || got.Questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected quiz: %+v", got)
	}
	// taken means gone
	if _, err := store.Take(ctx, "u1"); !errors.Is(err, quiz.ErrNoActiveQuiz) {
		t.Fatalf("second Take: want ErrNoActiveQuiz, got %v", err)
	}
}

func TestSQLStoreReplaceOverwrites(t *testing.T) {
	store := openTestStore(t, 10*time.Minute)
	ctx := context.Background()

	q1 := sampleQuiz(time.Now().Unix())
	if err := store.Replace(ctx, q1); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	q2 := sampleQuiz(time.Now().Unix())
	q2.ID = "q-2"
	if err := store.Replace(ctx, q2); err != nil {
		t.Fatalf("Replace overwrite: %v", err)
	}

	got, err := store.Take(ctx, "u1")
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got.ID != "q-2" {
		t.Fatalf("want q-2, got %s", got.ID)
	}
}

func TestSQLStoreExpiredQuizUnreachable(t *testing.T) {
	store := openTestStore(t, 10*time.Minute)
	ctx := context.Background()

	stale := sampleQuiz(time.Now().Add(-11 * time.Minute).Unix())
	if err := store.Replace(ctx, stale); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if _, err := store.Take(ctx, "u1"); !errors.Is(err, quiz.ErrNoActiveQuiz) {
		t.Fatalf("expired quiz: want ErrNoActiveQuiz, got %v", err)
	}
}

func TestSQLStoreTakeUnknownUser(t *testing.T) {
	store := openTestStore(t, 10*time.Minute)
	if _, err := store.Take(context.Background(), "nobody"); !errors.Is(err, quiz.ErrNoActiveQuiz) {
		t.Fatalf("want ErrNoActiveQuiz, got %v", err)
	}
}
