package user

import "errors"

// User is the persisted identity. PasswordHash never leaves the server;
// coins only ever change through AddCoins.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Coins        int64  `json:"coins"`
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
