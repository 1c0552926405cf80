package user

import "context"

type Store interface {
	Create(ctx context.Context, name, email, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)

	// AddCoins is the coin ledger: a single atomic increment. Amount must
	// be non-negative; there is no decrement path.
	AddCoins(ctx context.Context, id string, amount int64) error
}
