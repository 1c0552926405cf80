package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mind-engage/quizmint/internal/logger"
)

// SQLStore keeps quizzes in the quizzes table, keyed by user_id so the
// at-most-one-active invariant is structural. Expiry is enforced by a
// freshness cutoff on every read plus a janitor that purges stale rows.
type SQLStore struct {
	db  *sql.DB
	ttl time.Duration
	log *logger.Logger
}

func NewSQLStore(db *sql.DB, ttl time.Duration, log *logger.Logger) *SQLStore {
	return &SQLStore{db: db, ttl: ttl, log: log.With("store", "quiz_sql")}
}

func (s *SQLStore) Replace(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (user_id,id,questions_json,created_at) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id) DO UPDATE SET id=EXCLUDED.id, questions_json=EXCLUDED.questions_json, created_at=EXCLUDED.created_at`,
		q.UserID, q.ID, string(qj), q.CreatedAt)
	if err != nil {
		return fmt.Errorf("replace quiz: %w", err)
	}
	return nil
}

func (s *SQLStore) Take(ctx context.Context, userID string) (Quiz, error) {
	cutoff := time.Now().Add(-s.ttl).Unix()
	row := s.db.QueryRowContext(ctx,
		`DELETE FROM quizzes WHERE user_id=$1 AND created_at>$2 RETURNING id,questions_json,created_at`,
		userID, cutoff)

	var q Quiz
	var qjson string
	if err := row.Scan(&q.ID, &qjson, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNoActiveQuiz
		}
		return Quiz{}, err
	}
	q.UserID = userID
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, fmt.Errorf("decode stored quiz: %w", err)
	}
	return q, nil
}

// StartJanitor purges expired rows until ctx is done. The cutoff filter
// on Take already hides stale quizzes; this just keeps the table small.
func (s *SQLStore) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				cutoff := time.Now().Add(-s.ttl).Unix()
				res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE created_at<=$1`, cutoff)
				if err != nil {
					s.log.Warn("janitor purge failed", "err", err)
					continue
				}
				if n, err := res.RowsAffected(); err == nil && n > 0 {
					s.log.Debug("purged expired quizzes", "count", n)
				}
			}
		}
	}()
}
