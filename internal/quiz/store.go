package quiz

import "context"

// Store holds at most one active quiz per user.
//
// Replace atomically installs a quiz, discarding any previous one for the
// same user. Take atomically removes and returns the user's active quiz;
// an expired quiz is indistinguishable from an absent one and both yield
// ErrNoActiveQuiz. Neither operation may expose a half-replaced state to
// a concurrent caller.
type Store interface {
	Replace(ctx context.Context, q Quiz) error
	Take(ctx context.Context, userID string) (Quiz, error)
}
