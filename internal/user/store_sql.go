package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, name, email, passwordHash string) (User, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,name,email,password_hash,coins,created_at) VALUES ($1,$2,$3,$4,0,$5)`,
		id, name, email, passwordHash, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, Coins: 0}, nil
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.get(ctx, `SELECT id,name,email,password_hash,coins FROM users WHERE email=$1`, email)
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (User, error) {
	return s.get(ctx, `SELECT id,name,email,password_hash,coins FROM users WHERE id=$1`, id)
}

func (s *SQLStore) get(ctx context.Context, query, arg string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Coins)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *SQLStore) AddCoins(ctx context.Context, id string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative coin award: %d", amount)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE users SET coins = coins + $1 WHERE id=$2`, amount, id)
	if err != nil {
		return fmt.Errorf("award coins: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation matches the unique-constraint error text of both the
// modernc sqlite driver and pgx (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
